package models

import (
	"fmt"
	"strings"
)

// SearchType selects the article field a keyword search runs against.
type SearchType int

const (
	SearchTypeTitle SearchType = iota + 1
	SearchTypeContent
	SearchTypeID
	SearchTypeNickname
	SearchTypeHashtag
)

var searchTypeNames = map[SearchType]string{
	SearchTypeTitle:    "TITLE",
	SearchTypeContent:  "CONTENT",
	SearchTypeID:       "ID",
	SearchTypeNickname: "NICKNAME",
	SearchTypeHashtag:  "HASHTAG",
}

// SearchTypes lists every search type in declaration order.
func SearchTypes() []SearchType {
	return []SearchType{
		SearchTypeTitle,
		SearchTypeContent,
		SearchTypeID,
		SearchTypeNickname,
		SearchTypeHashtag,
	}
}

func (t SearchType) String() string {
	if name, ok := searchTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SearchType(%d)", int(t))
}

// ParseSearchType accepts the upper- or lower-case name of a search type.
func ParseSearchType(s string) (SearchType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, t := range SearchTypes() {
		if searchTypeNames[t] == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown search type %q", s)
}
