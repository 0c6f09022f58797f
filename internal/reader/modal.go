package reader

import "sync"

// Document exposes the page-level hooks a modal needs. Every registration
// returns the function that undoes it.
type Document interface {
	OnKey(key string, fn func()) (remove func())
	OnOutsideClick(fn func()) (remove func())
	LockScroll() (release func())
}

// ModalScope holds the document listeners and scroll lock of an open modal.
// Open acquires them once; Close releases all of them and may be called any
// number of times from any exit path.
type ModalScope struct {
	doc Document

	mu       sync.Mutex
	open     bool
	releases []func()
	onClose  func()
}

func NewModalScope(doc Document) *ModalScope {
	return &ModalScope{doc: doc}
}

// Open acquires the escape key listener, the outside-click listener and the
// scroll lock. Escape and outside clicks close the scope and then call
// onClose. Opening an open scope only replaces onClose.
func (m *ModalScope) Open(onClose func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClose = onClose
	if m.open {
		return
	}
	m.open = true
	if m.doc == nil {
		return
	}
	m.releases = []func(){
		m.doc.OnKey("Escape", m.dismiss),
		m.doc.OnOutsideClick(m.dismiss),
		m.doc.LockScroll(),
	}
}

func (m *ModalScope) dismiss() {
	m.mu.Lock()
	cb := m.onClose
	m.mu.Unlock()
	if m.Close() && cb != nil {
		cb()
	}
}

// Close releases everything Open acquired and reports whether the scope was
// open.
func (m *ModalScope) Close() bool {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return false
	}
	releases := m.releases
	m.releases = nil
	m.open = false
	m.mu.Unlock()

	for i := len(releases) - 1; i >= 0; i-- {
		if releases[i] != nil {
			releases[i]()
		}
	}
	return true
}

func (m *ModalScope) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// HeadlessDocument is an in-memory Document for servers, tools and tests.
type HeadlessDocument struct {
	mu        sync.Mutex
	nextID    int
	keys      map[int]keyListener
	outside   map[int]func()
	scrollRef int
}

type keyListener struct {
	key string
	fn  func()
}

func NewHeadlessDocument() *HeadlessDocument {
	return &HeadlessDocument{keys: map[int]keyListener{}, outside: map[int]func(){}}
}

func (d *HeadlessDocument) OnKey(key string, fn func()) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextID
	d.nextID++
	d.keys[id] = keyListener{key: key, fn: fn}
	return d.remover(func() { delete(d.keys, id) })
}

func (d *HeadlessDocument) OnOutsideClick(fn func()) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextID
	d.nextID++
	d.outside[id] = fn
	return d.remover(func() { delete(d.outside, id) })
}

func (d *HeadlessDocument) LockScroll() func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scrollRef++
	return d.remover(func() { d.scrollRef-- })
}

// remover wraps an undo step so that repeated calls run it once.
func (d *HeadlessDocument) remover(undo func()) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			undo()
		})
	}
}

// PressKey dispatches a key press to its listeners.
func (d *HeadlessDocument) PressKey(key string) {
	d.mu.Lock()
	var fns []func()
	for _, l := range d.keys {
		if l.key == key {
			fns = append(fns, l.fn)
		}
	}
	d.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// ClickOutside dispatches a click outside any modal.
func (d *HeadlessDocument) ClickOutside() {
	d.mu.Lock()
	fns := make([]func(), 0, len(d.outside))
	for _, fn := range d.outside {
		fns = append(fns, fn)
	}
	d.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// ScrollLocked reports whether any scroll lock is held.
func (d *HeadlessDocument) ScrollLocked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrollRef > 0
}

// Listeners returns the number of registered listeners.
func (d *HeadlessDocument) Listeners() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.keys) + len(d.outside)
}
