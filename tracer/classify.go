package tracer

import (
	"image/color"

	cfg "github.com/automoto/doomerang-tracer/config"
)

// ColorCategory selects which configured color a line uses
type ColorCategory int

const (
	CategoryOther ColorCategory = iota
	CategoryFriend
	CategoryMarkedPeer
)

func (c ColorCategory) String() string {
	switch c {
	case CategoryFriend:
		return "Friend"
	case CategoryMarkedPeer:
		return "MarkedPeer"
	default:
		return "Other"
	}
}

// Classification is a category plus whether friend precedence overrode a marked peer
type Classification struct {
	Category          ColorCategory
	FriendPrioritized bool
}

// Classify resolves the color category. Marked peers win over friends unless
// prioritizeFriends is set and the participant is both.
func Classify(markedPeer, friend, prioritizeFriends bool) Classification {
	switch {
	case markedPeer && friend && prioritizeFriends:
		return Classification{Category: CategoryFriend, FriendPrioritized: true}
	case markedPeer:
		return Classification{Category: CategoryMarkedPeer}
	case friend:
		return Classification{Category: CategoryFriend}
	default:
		return Classification{Category: CategoryOther}
	}
}

// Palette maps categories to colors
type Palette struct {
	Friend     color.RGBA
	MarkedPeer color.RGBA
	Other      color.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		Friend:     cfg.Tracer.DefaultFriendsColor,
		MarkedPeer: cfg.Tracer.DefaultMarkedPeerColor,
		Other:      cfg.Tracer.DefaultOthersColor,
	}
}

func (p Palette) Color(c ColorCategory) color.RGBA {
	switch c {
	case CategoryFriend:
		return p.Friend
	case CategoryMarkedPeer:
		return p.MarkedPeer
	default:
		return p.Other
	}
}
