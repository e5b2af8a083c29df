// This file is part of x87fpu.
//
// x87fpu is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// x87fpu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with x87fpu.  If not, see <https://www.gnu.org/licenses/>.

package stack

import "github.com/jetsetilly/x87fpu/x87/fp80"

// Tag is the per-register classification the hardware keeps in the tag
// word, two bits per physical register.
type Tag uint8

const (
	TagValid Tag = iota
	TagZero
	TagSpecial
	TagEmpty
)

// TagWord is the 16 bit tag register: eight 2 bit fields, one per physical
// register, indexed independent of TOP.
type TagWord uint16

// Get returns the tag of physical register i.
func (t TagWord) Get(i int) Tag {
	return Tag(t >> uint(i*2) & 0x3)
}

// Set returns a copy of t with physical register i's tag replaced.
func (t TagWord) Set(i int, tag Tag) TagWord {
	mask := TagWord(0x3) << uint(i*2)
	return (t &^ mask) | (TagWord(tag) << uint(i*2))
}

// classify derives the tag a freshly written register value gets, per the
// hardware's own load-time classification (empty is never produced here -
// that tag is only ever set by Pop).
func classify(v fp80.F80) Tag {
	switch {
	case v.IsZero():
		return TagZero
	case v.IsDenormal(), v.IsPseudoDenormal(), v.IsMaxExp():
		return TagSpecial
	default:
		return TagValid
	}
}
