// Package pipeline holds the generic kanban collections: a Board is an ordered list of Columns,
// each exclusively owning an ordered list of cards.
//
// Boards are not safe for concurrent use; the store that owns them serializes access.
package pipeline

import (
	"strings"
)

// Entity is implemented by everything held in a Board or a List.
// Clone must return a deep copy so that reads never hand out the store's own slices.
type Entity[T any] interface {
	EntityID() string
	Clone() T
}

type Column[T Entity[T]] struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Cards []T    `json:"cards" yaml:"cards"`
}

func (col Column[T]) clone() Column[T] {
	cards := make([]T, len(col.Cards))
	for i, c := range col.Cards {
		cards[i] = c.Clone()
	}
	return Column[T]{ID: col.ID, Title: col.Title, Cards: cards}
}

func (col *Column[T]) indexOf(id string) int {
	for i, c := range col.Cards {
		if c.EntityID() == id {
			return i
		}
	}
	return -1
}

type Board[T Entity[T]] struct {
	columns []*Column[T]
}

// NewBoard returns a board with one empty column per title, in order.
func NewBoard[T Entity[T]](titles ...string) *Board[T] {
	b := &Board[T]{columns: make([]*Column[T], 0, len(titles))}
	for _, title := range titles {
		b.columns = append(b.columns, &Column[T]{ID: Slug(title), Title: title, Cards: []T{}})
	}
	return b
}

// Slug turns a column title into its id, eg. "New Opportunity" -> "new-opportunity".
func Slug(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), "-")
}

// Columns returns a deep copy of every column.
func (b *Board[T]) Columns() []Column[T] {
	cols := make([]Column[T], len(b.columns))
	for i, col := range b.columns {
		cols[i] = col.clone()
	}
	return cols
}

func (b *Board[T]) Titles() []string {
	titles := make([]string, len(b.columns))
	for i, col := range b.columns {
		titles[i] = col.Title
	}
	return titles
}

func (b *Board[T]) HasColumn(title string) bool {
	return b.column(title) != nil
}

// FirstTitle is the title of the first column, or "" for an empty board.
func (b *Board[T]) FirstTitle() string {
	if len(b.columns) == 0 {
		return ""
	}
	return b.columns[0].Title
}

func (b *Board[T]) column(title string) *Column[T] {
	for _, col := range b.columns {
		if col.Title == title {
			return col
		}
	}
	return nil
}

// Find does a linear scan over all columns. First match wins.
func (b *Board[T]) Find(id string) (card T, title string, ok bool) {
	for _, col := range b.columns {
		if i := col.indexOf(id); i >= 0 {
			return col.Cards[i].Clone(), col.Title, true
		}
	}
	return card, "", false
}

// Replace swaps the card having the same id in whichever column holds it.
// Column membership is left untouched.
func (b *Board[T]) Replace(card T) bool {
	id := card.EntityID()
	for _, col := range b.columns {
		if i := col.indexOf(id); i >= 0 {
			col.Cards[i] = card.Clone()
			return true
		}
	}
	return false
}

// Prepend inserts the card at the head of the titled column.
func (b *Board[T]) Prepend(title string, card T) bool {
	col := b.column(title)
	if col == nil {
		return false
	}
	col.Cards = append([]T{card.Clone()}, col.Cards...)
	return true
}

// Append inserts the card at the tail of the titled column.
func (b *Board[T]) Append(title string, card T) bool {
	col := b.column(title)
	if col == nil {
		return false
	}
	col.Cards = append(col.Cards, card.Clone())
	return true
}

// Take removes the first card with this id from wherever it is and returns it with its former column title.
func (b *Board[T]) Take(id string) (card T, title string, ok bool) {
	for _, col := range b.columns {
		if i := col.indexOf(id); i >= 0 {
			card = col.Cards[i]
			col.Cards = append(col.Cards[:i:i], col.Cards[i+1:]...)
			return card, col.Title, true
		}
	}
	return card, "", false
}

// Delete removes every card with this id from every column and returns how many were removed.
func (b *Board[T]) Delete(id string) int {
	var n int
	for _, col := range b.columns {
		kept := col.Cards[:0:0]
		for _, c := range col.Cards {
			if c.EntityID() == id {
				n++
				continue
			}
			kept = append(kept, c)
		}
		col.Cards = kept
	}
	return n
}

// Move removes the card from `from`, applies the optional patch and appends it to `to`.
// It is a no-op returning false if either column or the card (in `from`) is missing.
// When from == to the card keeps its position and only the patch is applied.
func (b *Board[T]) Move(id, from, to string, patch func(T) T) bool {
	src, dst := b.column(from), b.column(to)
	if src == nil || dst == nil {
		return false
	}
	i := src.indexOf(id)
	if i < 0 {
		return false
	}
	card := src.Cards[i]
	if patch != nil {
		card = patch(card.Clone())
	}
	if src == dst {
		src.Cards[i] = card
		return true
	}
	src.Cards = append(src.Cards[:i:i], src.Cards[i+1:]...)
	dst.Cards = append(dst.Cards, card)
	return true
}

// Flatten returns copies of all cards, column by column.
func (b *Board[T]) Flatten() []T {
	cards := make([]T, 0, b.Len())
	for _, col := range b.columns {
		for _, c := range col.Cards {
			cards = append(cards, c.Clone())
		}
	}
	return cards
}

// Filter returns copies of the cards matching `keep`, column by column.
func (b *Board[T]) Filter(keep func(card T, title string) bool) []T {
	cards := make([]T, 0)
	for _, col := range b.columns {
		for _, c := range col.Cards {
			if keep(c, col.Title) {
				cards = append(cards, c.Clone())
			}
		}
	}
	return cards
}

// Len is the number of cards over all columns.
func (b *Board[T]) Len() int {
	var n int
	for _, col := range b.columns {
		n += len(col.Cards)
	}
	return n
}

// Count returns the number of cards held by each column, keyed by title.
func (b *Board[T]) Count() map[string]int {
	counts := make(map[string]int, len(b.columns))
	for _, col := range b.columns {
		counts[col.Title] = len(col.Cards)
	}
	return counts
}

// Membership returns how many columns hold a card with this id. A consistent board answers 0 or 1.
func (b *Board[T]) Membership(id string) int {
	var n int
	for _, col := range b.columns {
		if col.indexOf(id) >= 0 {
			n++
		}
	}
	return n
}
