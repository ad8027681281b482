// Package sample generates the rows and columns displayed by the demo.
package sample

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/coltab/coltab/internal/width"
	"github.com/google/uuid"
)

// User is a row of the demo table.
type User struct {
	ID     uuid.UUID
	Name   string
	Age    int
	Height float64
}

const (
	KeyID     = "id"
	KeyName   = "name"
	KeyAge    = "age"
	KeyHeight = "height"
)

// Keys returns the keys of every sample column in display order.
func Keys() []string {
	return []string{KeyID, KeyName, KeyAge, KeyHeight}
}

var names = []string{
	"Ada Lovelace",
	"Alan Turing",
	"Barbara Liskov",
	"Dennis Ritchie",
	"Edsger Dijkstra",
	"Frances Allen",
	"Grace Hopper",
	"Ken Thompson",
	"Margaret Hamilton",
	"Radia Perlman",
	"Rob Pike",
	"Robert Griesemer",
}

// Generate returns n users with attributes drawn from r.
func Generate(r *rand.Rand, n int) []User {
	users := make([]User, max(n, 0))
	for i := range users {
		users[i] = User{
			ID:     newID(r),
			Name:   names[r.IntN(len(names))],
			Age:    18 + r.IntN(80),
			Height: 1.5 + 0.5*r.Float64(),
		}
	}
	return users
}

// newID returns a version 4 UUID whose random bits are taken from r, so that
// a seeded source generates the same IDs every time.
func newID(r *rand.Rand) uuid.UUID {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], r.Uint64())
	binary.BigEndian.PutUint64(b[8:], r.Uint64())
	id, err := uuid.NewRandomFromReader(bytes.NewReader(b[:]))
	if err != nil {
		// A reader over 16 bytes never runs short.
		panic(err)
	}
	return id
}

// DefaultSizings returns the sizing of each sample column.
func DefaultSizings() map[string]width.Sizing {
	return map[string]width.Sizing{
		KeyID:     width.WrapContent(),
		KeyName:   width.Weight(2),
		KeyAge:    width.Fixed(5),
		KeyHeight: width.Weight(1),
	}
}

// Content declares the sample columns. The id column is left out unless
// showID is true. sizings overrides the default sizing of columns by key.
func Content(showID bool, sizings map[string]width.Sizing) width.Content[User] {
	sizing := func(key string) width.Sizing {
		if s, ok := sizings[key]; ok {
			return s
		}
		return DefaultSizings()[key]
	}
	return func(b *width.Builder[User]) {
		if showID {
			b.Add(width.Column[User]{
				Key:    KeyID,
				Sizing: sizing(KeyID),
				Header: func() string { return "ID" },
				Cell: func(u User) string {
					return u.ID.String()
				},
				Filter: width.NumberFilter{},
			})
		}
		b.Column(KeyName, sizing(KeyName), func() string { return "NAME" }, func(u User) string {
			return u.Name
		})
		b.Column(KeyAge, sizing(KeyAge), func() string { return "AGE" }, func(u User) string {
			return strconv.Itoa(u.Age)
		})
		b.Column(KeyHeight, sizing(KeyHeight), func() string { return "HEIGHT" }, func(u User) string {
			return fmt.Sprintf("%.2fm", u.Height)
		})
	}
}
