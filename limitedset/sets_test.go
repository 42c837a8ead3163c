// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package limitedset_test

import (
	"testing"

	"github.com/bitmark-inc/ethnetd/limitedset"
	"github.com/bitmark-inc/ethnetd/types"
)

func h(s string) types.Hash {
	return types.Keccak256Hash([]byte(s))
}

func TestAddition(t *testing.T) {

	items := []string{
		"0123456789",
		"abcdefghijklmnopqrstuvwxyz",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"hijklmn",
		"opqrstu",
		"vwxyzab",
		"cdefghi",
		"jklmnop",
		"qrstuvw",
	}

	expected := []string{
		"opqrstu",
		"vwxyzab",
		"cdefghi",
		"jklmnop",
		"qrstuvw",
	}

	check(t, items, expected)
}

func TestPullToFront(t *testing.T) {

	items := []string{
		"0123456789",
		"abcdefghijklmnopqrstuvwxyz",
		"abcdefg",
		"hijklmn",
		"abcdefg",
		"opqrstu",
		"abcdefg",
		"vwxyzab",
		"abcdefg",
		"cdefghi",
		"abcdefg",
		"jklmnop",
		"abcdefg",
		"qrstuvw",
		"abcdefg",
		"xyzabcd",
	}

	expected := []string{
		"cdefghi",
		"jklmnop",
		"qrstuvw",
		"abcdefg",
		"xyzabcd",
	}

	check(t, items, expected)
}

// re-adding the oldest item must keep the ring consistent
func TestReAddOldest(t *testing.T) {

	items := []string{
		"a", "b", "c",
		"a", // a is the oldest at this point
		"d", // evicts b
		"e", // evicts c
	}

	expected := []string{"a", "d", "e"}

	check(t, items, expected)
}

func TestAddReportsNew(t *testing.T) {
	s := limitedset.New(4)

	if !s.Add(h("x")) {
		t.Errorf("first add not reported as new")
	}
	if s.Add(h("x")) {
		t.Errorf("second add reported as new")
	}

	added := s.AddAll([]types.Hash{h("x"), h("y"), h("z")})
	if 2 != len(added) {
		t.Errorf("actual: %d  expected: 2 new items", len(added))
	}
	if 3 != s.Len() {
		t.Errorf("actual: %d  expected: 3 items", s.Len())
	}
}

// add a list of items and check that all the expected ones are present
// compute the ones that should not be present and check that they are not
func check(t *testing.T, items []string, expected []string) {

	setSize := len(expected)

	s1 := limitedset.New(setSize)
	if nil == s1 {
		t.Fatalf("failed to create a limitedset of size: %d", setSize)
	}

	for _, d := range items {
		s1.Add(h(d))
	}

	present := make(map[string]struct{})

	for i, d := range expected {
		present[d] = struct{}{}
		if !s1.Exists(h(d)) {
			t.Errorf("item[%d] missing: %q", i, d)
		}
	}

	for i, d := range items {
		if _, ok := present[d]; ok {
			continue
		}
		if s1.Exists(h(d)) {
			t.Errorf("item[%d] present: %q", i, d)
		}
	}

	if s1.Len() != setSize {
		t.Errorf("actual size: %d  expected: %d", s1.Len(), setSize)
	}
}
