package gallery

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Carmen-Shannon/oxy-gallery/common"
)

type fakeScheduler struct {
	clock     *manualClock
	nextID    int
	frames    map[int]func(dt float32)
	intervals map[int]*fakeInterval
	posted    []func()
}

type fakeInterval struct {
	every time.Duration
	next  time.Time
	fn    func()
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{
		clock:     newManualClock(),
		frames:    map[int]func(dt float32){},
		intervals: map[int]*fakeInterval{},
	}
}

func (s *fakeScheduler) Now() time.Time { return s.clock.Now() }

func (s *fakeScheduler) RequestFrames(fn func(dt float32)) func() {
	s.nextID++
	id := s.nextID
	s.frames[id] = fn
	return func() { delete(s.frames, id) }
}

func (s *fakeScheduler) Every(d time.Duration, fn func()) func() {
	s.nextID++
	id := s.nextID
	s.intervals[id] = &fakeInterval{every: d, next: s.clock.Now().Add(d), fn: fn}
	return func() { delete(s.intervals, id) }
}

func (s *fakeScheduler) Post(fn func()) { s.posted = append(s.posted, fn) }

// Flush runs every posted closure, including ones posted while flushing.
func (s *fakeScheduler) Flush() {
	for len(s.posted) > 0 {
		fn := s.posted[0]
		s.posted = s.posted[1:]
		fn()
	}
}

// Frame advances the clock by dt and runs every frame callback once.
func (s *fakeScheduler) Frame(dt float32) {
	s.Advance(time.Duration(float64(dt) * float64(time.Second)))
	ids := make([]int, 0, len(s.frames))
	for id := range s.frames {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := s.frames[id]; ok {
			fn(dt)
		}
	}
}

// Advance moves the clock and fires due intervals.
func (s *fakeScheduler) Advance(d time.Duration) {
	s.clock.Advance(d)
	for _, iv := range s.intervals {
		for !iv.next.After(s.clock.Now()) {
			iv.next = iv.next.Add(iv.every)
			iv.fn()
		}
	}
}

type fakeHost struct {
	width, height int
	onResize      func(w, h int)
	onScroll      func(delta float32)
	onKey         func(code uint32)
}

func (h *fakeHost) Width() int                                   { return h.width }
func (h *fakeHost) Height() int                                  { return h.height }
func (h *fakeHost) SetResizeCallback(cb func(width, height int)) { h.onResize = cb }
func (h *fakeHost) SetScrollCallback(cb func(delta float32))     { h.onScroll = cb }
func (h *fakeHost) SetKeyDownCallback(cb func(keyCode uint32))   { h.onKey = cb }

func (h *fakeHost) Resize(w, hgt int) {
	h.width, h.height = w, hgt
	if h.onResize != nil {
		h.onResize(w, hgt)
	}
}

func (h *fakeHost) listenerCount() int {
	n := 0
	if h.onResize != nil {
		n++
	}
	if h.onScroll != nil {
		n++
	}
	if h.onKey != nil {
		n++
	}
	return n
}

var errUploadFailed = errors.New("upload failed")

type fakeSurface struct {
	width, height int
	nextHandle    uint32
	textures      map[common.TextureHandle]common.TextureStagingData
	planes        map[common.PlaneHandle]common.TextureHandle
	uploads       int
	failUploads   bool
	draws         [][]common.PlaneInstance
	released      bool
}

func newFakeSurface(w, h int) *fakeSurface {
	return &fakeSurface{
		width:    w,
		height:   h,
		textures: map[common.TextureHandle]common.TextureStagingData{},
		planes:   map[common.PlaneHandle]common.TextureHandle{},
	}
}

func (s *fakeSurface) Resize(w, h int) { s.width, s.height = w, h }

func (s *fakeSurface) UploadTexture(label string, data common.TextureStagingData) (common.TextureHandle, error) {
	if s.failUploads {
		return 0, errUploadFailed
	}
	s.uploads++
	s.nextHandle++
	h := common.TextureHandle(s.nextHandle)
	s.textures[h] = data
	return h, nil
}

func (s *fakeSurface) ReleaseTexture(h common.TextureHandle) { delete(s.textures, h) }

func (s *fakeSurface) AddPlane(label string, tex common.TextureHandle) (common.PlaneHandle, error) {
	if _, ok := s.textures[tex]; !ok {
		return 0, errors.New("unknown texture")
	}
	s.nextHandle++
	h := common.PlaneHandle(s.nextHandle)
	s.planes[h] = tex
	return h, nil
}

func (s *fakeSurface) Draw(viewProj [16]float32, planes []common.PlaneInstance) error {
	s.draws = append(s.draws, append([]common.PlaneInstance(nil), planes...))
	return nil
}

func (s *fakeSurface) Release() {
	s.released = true
	clear(s.textures)
	clear(s.planes)
}

// fakeLoader records each Load call so tests can deliver results in any order.
type fakeLoader struct {
	calls []*fakeLoadCall
}

type fakeLoadCall struct {
	ctx     context.Context
	sources []ImageSource
	deliver func(LoadResult)
}

func (l *fakeLoader) Load(ctx context.Context, sources []ImageSource, deliver func(LoadResult)) {
	l.calls = append(l.calls, &fakeLoadCall{ctx: ctx, sources: sources, deliver: deliver})
}

func (l *fakeLoader) last() *fakeLoadCall {
	if len(l.calls) == 0 {
		return nil
	}
	return l.calls[len(l.calls)-1]
}

func (c *fakeLoadCall) succeed(i int, w, h uint32) {
	c.deliver(LoadResult{
		Index:  i,
		Source: c.sources[i],
		Data:   common.TextureStagingData{Pixels: make([]byte, w*h*4), Width: w, Height: h},
	})
}

func (c *fakeLoadCall) fail(i int) {
	c.deliver(LoadResult{Index: i, Source: c.sources[i], Err: errors.New("decode failed")})
}

func testSources(n int) []ImageSource {
	out := make([]ImageSource, n)
	for i := range out {
		out[i] = ImageSource{URI: "img" + string(rune('a'+i)) + ".png"}
	}
	return out
}
