// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"fmt"

	"github.com/lholznagel/caph-sub001/fault"
)

// Action - first header byte
type Action uint8

// the actions
const (
	Fetch  Action = 0
	Insert Action = 1
	Update Action = 2
	Delete Action = 3
	Lookup Action = 4
)

// ParseAction - validate a header byte
func ParseAction(b uint8) (Action, error) {
	a := Action(b)
	switch a {
	case Fetch, Insert, Update, Delete, Lookup:
		return a, nil
	default:
		return 0, fault.UnknownAction
	}
}

func (a Action) String() string {
	switch a {
	case Fetch:
		return "Fetch"
	case Insert:
		return "Insert"
	case Update:
		return "Update"
	case Delete:
		return "Delete"
	case Lookup:
		return "Lookup"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// CacheKind - second header byte
type CacheKind uint8

// the kinds, values are fixed by the wire format
const (
	Blueprint       CacheKind = 0
	IdName          CacheKind = 1
	Item            CacheKind = 2
	ItemMaterial    CacheKind = 3
	MarketOrder     CacheKind = 7
	MarketOrderInfo CacheKind = 8
	Region          CacheKind = 9
	Station         CacheKind = 10
)

// Kinds - every cache kind in wire order
var Kinds = []CacheKind{
	Blueprint,
	IdName,
	Item,
	ItemMaterial,
	MarketOrder,
	MarketOrderInfo,
	Region,
	Station,
}

// ParseCacheKind - validate a header byte
func ParseCacheKind(b uint8) (CacheKind, error) {
	k := CacheKind(b)
	switch k {
	case Blueprint, IdName, Item, ItemMaterial, MarketOrder, MarketOrderInfo, Region, Station:
		return k, nil
	default:
		return 0, fault.UnknownCacheKind
	}
}

func (k CacheKind) String() string {
	switch k {
	case Blueprint:
		return "Blueprint"
	case IdName:
		return "IdName"
	case Item:
		return "Item"
	case ItemMaterial:
		return "ItemMaterial"
	case MarketOrder:
		return "MarketOrder"
	case MarketOrderInfo:
		return "MarketOrderInfo"
	case Region:
		return "Region"
	case Station:
		return "Station"
	default:
		return fmt.Sprintf("CacheKind(%d)", uint8(k))
	}
}
