package pipeline

// List is a keyed, ordered collection without columns (accounts, contacts, tasks...).
// Newest entries come first.
type List[T Entity[T]] struct {
	items []T
}

func NewList[T Entity[T]](items ...T) *List[T] {
	l := &List[T]{items: make([]T, 0, len(items))}
	for _, item := range items {
		l.items = append(l.items, item.Clone())
	}
	return l
}

// All returns copies of every item, in order.
func (l *List[T]) All() []T {
	items := make([]T, len(l.items))
	for i, item := range l.items {
		items[i] = item.Clone()
	}
	return items
}

func (l *List[T]) indexOf(id string) int {
	for i, item := range l.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

func (l *List[T]) Get(id string) (item T, ok bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.items[i].Clone(), true
	}
	return item, false
}

// Add inserts at the head.
func (l *List[T]) Add(item T) {
	l.items = append([]T{item.Clone()}, l.items...)
}

// Update replaces the item having the same id; false if there is none.
func (l *List[T]) Update(item T) bool {
	if i := l.indexOf(item.EntityID()); i >= 0 {
		l.items[i] = item.Clone()
		return true
	}
	return false
}

// Modify applies fn to the stored item in place and returns the result.
func (l *List[T]) Modify(id string, fn func(T) T) (item T, ok bool) {
	i := l.indexOf(id)
	if i < 0 {
		return item, false
	}
	l.items[i] = fn(l.items[i].Clone())
	return l.items[i].Clone(), true
}

// Delete removes every item with this id and returns how many were removed.
func (l *List[T]) Delete(id string) int {
	var n int
	kept := l.items[:0:0]
	for _, item := range l.items {
		if item.EntityID() == id {
			n++
			continue
		}
		kept = append(kept, item)
	}
	l.items = kept
	return n
}

func (l *List[T]) Len() int { return len(l.items) }
