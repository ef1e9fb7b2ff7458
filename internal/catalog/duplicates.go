package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"nutrition-catalog-service/internal/models"
)

// Identifier space names. Each is independently unique across the catalog;
// barcode slots never cross-compare.
const (
	SpaceDID               = "DID"
	SpaceProductID         = "productID"
	SpaceContainer1Barcode = "container1Barcode"
	SpaceContainer2Barcode = "container2Barcode"
	SpaceContainer3Barcode = "container3Barcode"
)

// spaceOrder fixes the reporting order of identifier spaces.
var spaceOrder = []string{
	SpaceDID,
	SpaceProductID,
	SpaceContainer1Barcode,
	SpaceContainer2Barcode,
	SpaceContainer3Barcode,
}

// Collisions maps an identifier-space name to the distinct colliding values
// found, in first-seen order.
type Collisions map[string][]string

// Any reports whether at least one identifier space has a collision.
func (c Collisions) Any() bool {
	for _, values := range c {
		if len(values) > 0 {
			return true
		}
	}
	return false
}

// Messages renders one human-readable error per non-empty space, in the
// fixed space order so output is deterministic.
func (c Collisions) Messages() []string {
	var msgs []string
	for _, space := range spaceOrder {
		if values := c[space]; len(values) > 0 {
			msgs = append(msgs, fmt.Sprintf("duplicate %s values: %s", space, strings.Join(values, ", ")))
		}
	}
	return msgs
}

// index is a per-space set of known identifier values.
type index map[string]struct{}

func (ix index) add(value string) {
	if value != "" {
		ix[value] = struct{}{}
	}
}

func (ix index) has(value string) bool {
	_, ok := ix[value]
	return value != "" && ok
}

// collector accumulates distinct colliding values for one space.
type collector struct {
	seen   index
	values []string
}

func (c *collector) record(value string) {
	if c.seen == nil {
		c.seen = index{}
	}
	if _, ok := c.seen[value]; ok {
		return
	}
	c.seen[value] = struct{}{}
	c.values = append(c.values, value)
}

// FindDuplicates builds fresh identifier indices from the existing catalog
// and reports every candidate value that collides, per identifier space.
// Header identifiers, item identifiers and the three barcode slots are five
// independent spaces; a slot-1 barcode matching a slot-2 barcode is not a
// collision. The indices are ephemeral and rebuilt on every call, which is
// fine at catalog sizes of tens to low hundreds of products.
func FindDuplicates(existing, candidates []models.Product) Collisions {
	dids := index{}
	productIDs := index{}
	slot1 := index{}
	slot2 := index{}
	slot3 := index{}

	for _, p := range existing {
		dids.add(strconv.Itoa(p.DID))
		for _, item := range p.Items {
			productIDs.add(item.ProductID)
			slot1.add(item.Container1Barcode)
			slot2.add(item.Container2Barcode)
			slot3.add(item.Container3Barcode)
		}
	}

	var didHits, productIDHits, slot1Hits, slot2Hits, slot3Hits collector
	for _, p := range candidates {
		if dids.has(strconv.Itoa(p.DID)) {
			didHits.record(strconv.Itoa(p.DID))
		}
		for _, item := range p.Items {
			if productIDs.has(item.ProductID) {
				productIDHits.record(item.ProductID)
			}
			if slot1.has(item.Container1Barcode) {
				slot1Hits.record(item.Container1Barcode)
			}
			if slot2.has(item.Container2Barcode) {
				slot2Hits.record(item.Container2Barcode)
			}
			if slot3.has(item.Container3Barcode) {
				slot3Hits.record(item.Container3Barcode)
			}
		}
	}

	collisions := Collisions{}
	if len(didHits.values) > 0 {
		collisions[SpaceDID] = didHits.values
	}
	if len(productIDHits.values) > 0 {
		collisions[SpaceProductID] = productIDHits.values
	}
	if len(slot1Hits.values) > 0 {
		collisions[SpaceContainer1Barcode] = slot1Hits.values
	}
	if len(slot2Hits.values) > 0 {
		collisions[SpaceContainer2Barcode] = slot2Hits.values
	}
	if len(slot3Hits.values) > 0 {
		collisions[SpaceContainer3Barcode] = slot3Hits.values
	}
	return collisions
}
