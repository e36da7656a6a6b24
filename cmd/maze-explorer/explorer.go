package main

import (
	"fmt"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/mazegen/audio"
	"github.com/lixenwraith/mazegen/core"
	"github.com/lixenwraith/mazegen/maze"
	"github.com/lixenwraith/mazegen/parameter"
	"github.com/lixenwraith/mazegen/tiles"
)

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleOpen   = tcell.StyleDefault
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleGoal   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleTrail  = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// Explorer walks a logical maze through a tile cache and draws the area around the player
type Explorer struct {
	screen        tcell.Screen
	width, height int

	cache   *tiles.Cache
	archive *tiles.Archive // optional
	side    int

	player core.Point
	goal   core.Point
	trail  []core.Point
	tiles  mapset.Set[core.Point] // origins of every tile entered

	sounds     *audio.SoundManager
	lastMisses uint64

	session    uuid.UUID
	log        logrus.FieldLogger
	status     string
	statusTime time.Time
	won        bool
}

// NewExplorer places the player on the first room of a side×side maze served by cache
func NewExplorer(screen tcell.Screen, cache *tiles.Cache, side int, sounds *audio.SoundManager, log logrus.FieldLogger) *Explorer {
	if sounds == nil {
		sounds = audio.NewSoundManager(nil)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	e := &Explorer{
		screen:  screen,
		cache:   cache,
		side:    side,
		player:  maze.DefaultStart(),
		goal:    maze.DefaultEnd(side, side),
		trail:   make([]core.Point, 0, parameter.TrailLength),
		tiles:   mapset.New[core.Point](),
		sounds:  sounds,
		session: uuid.New(),
		log:     log,
	}
	e.width, e.height = screen.Size()
	e.enterTile()
	e.lastMisses = cache.Stats().Misses
	return e
}

// open reports whether a logical cell is inside the maze and not wall
func (e *Explorer) open(p core.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < e.side && p.Y < e.side && e.cache.Get(p.X, p.Y)
}

// step moves one cell; returns false on a wall
func (e *Explorer) step(dx, dy int) bool {
	next := e.player.Add(dx, dy)
	if !e.open(next) {
		return false
	}

	if len(e.trail) == parameter.TrailLength {
		copy(e.trail, e.trail[1:])
		e.trail = e.trail[:len(e.trail)-1]
	}
	e.trail = append(e.trail, e.player)
	e.player = next
	e.enterTile()
	return true
}

// move steps once, or runs along a corridor until a junction, dead end or the goal
func (e *Explorer) move(dx, dy int, run bool) {
	if !e.step(dx, dy) {
		e.sounds.Play(audio.SoundBump)
		e.setStatus("Bump")
		return
	}
	for run && e.player != e.goal && e.open(e.player.Add(dx, dy)) && !e.junction(dx, dy) {
		e.step(dx, dy)
	}
	e.afterMove()
}

// junction reports an opening to either side of the direction of travel
func (e *Explorer) junction(dx, dy int) bool {
	return e.open(e.player.Add(dy, dx)) || e.open(e.player.Add(-dy, -dx))
}

func (e *Explorer) afterMove() {
	if misses := e.cache.Stats().Misses; misses != e.lastMisses {
		e.lastMisses = misses
		e.sounds.Play(audio.SoundTile)
	}
	if e.player == e.goal && !e.won {
		e.won = true
		e.sounds.Play(audio.SoundGoal)
		e.setStatus("Goal reached")
		e.log.WithFields(logrus.Fields{
			"tiles_visited": e.tiles.Size(),
			"stats":         fmt.Sprintf("%+v", e.cache.Stats()),
		}).Info("Goal reached")
	}
}

func (e *Explorer) enterTile() {
	origin := e.cache.TileOrigin(e.player.X, e.player.Y)
	if !e.tiles.Has(origin) {
		e.tiles.Put(origin)
		e.log.WithFields(logrus.Fields{"tile_x": origin.X, "tile_y": origin.Y}).Debug("Entered new tile")
	}
}

func (e *Explorer) setStatus(msg string) {
	e.status = msg
	e.statusTime = time.Now()
}

// handleInput applies one terminal event; returns false to quit
func (e *Explorer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			e.move(-1, 0, ev.Modifiers()&tcell.ModShift != 0)
		case tcell.KeyRight:
			e.move(1, 0, ev.Modifiers()&tcell.ModShift != 0)
		case tcell.KeyUp:
			e.move(0, -1, ev.Modifiers()&tcell.ModShift != 0)
		case tcell.KeyDown:
			e.move(0, 1, ev.Modifiers()&tcell.ModShift != 0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				e.move(-1, 0, false)
			case 'l':
				e.move(1, 0, false)
			case 'k':
				e.move(0, -1, false)
			case 'j':
				e.move(0, 1, false)
			case 'H':
				e.move(-1, 0, true)
			case 'L':
				e.move(1, 0, true)
			case 'K':
				e.move(0, -1, true)
			case 'J':
				e.move(0, 1, true)
			}
		}

	case *tcell.EventResize:
		e.width, e.height = e.screen.Size()
		e.screen.Sync()
	}
	return true
}

// viewOrigin is the logical cell drawn at the top-left screen corner
func (e *Explorer) viewOrigin() core.Point {
	viewH := max(e.height-parameter.StatusLines, 1)
	return core.Point{X: e.player.X - e.width/2, Y: e.player.Y - viewH/2}
}

func (e *Explorer) draw() {
	e.screen.Clear()
	viewH := e.height - parameter.StatusLines
	origin := e.viewOrigin()

	for sy := 0; sy < viewH; sy++ {
		for sx := 0; sx < e.width; sx++ {
			p := origin.Add(sx, sy)
			if p.X < 0 || p.Y < 0 || p.X >= e.side || p.Y >= e.side {
				continue
			}
			if e.cache.Get(p.X, p.Y) {
				e.screen.SetContent(sx, sy, parameter.OpenChar, nil, styleOpen)
			} else {
				e.screen.SetContent(sx, sy, parameter.WallChar, nil, styleWall)
			}
		}
	}

	for _, p := range e.trail {
		e.putCell(origin, p, parameter.TrailChar, styleTrail)
	}
	e.putCell(origin, e.goal, parameter.GoalChar, styleGoal)
	e.putCell(origin, e.player, parameter.PlayerChar, stylePlayer)

	e.drawStatus()
	e.screen.Show()
}

func (e *Explorer) putCell(origin, p core.Point, ch rune, style tcell.Style) {
	sx, sy := p.X-origin.X, p.Y-origin.Y
	if sx >= 0 && sy >= 0 && sx < e.width && sy < e.height-parameter.StatusLines {
		e.screen.SetContent(sx, sy, ch, nil, style)
	}
}

func (e *Explorer) drawStatus() {
	if e.height < parameter.StatusLines {
		return
	}
	st := e.cache.Stats()
	tile := e.cache.TileOrigin(e.player.X, e.player.Y)
	line1 := fmt.Sprintf(" pos (%d,%d) tile (%d,%d) goal %d away | resident %d/%d visited %d",
		e.player.X, e.player.Y, tile.X, tile.Y,
		abs(e.goal.X-e.player.X)+abs(e.goal.Y-e.player.Y),
		len(e.cache.Resident()), e.cache.Capacity(), e.tiles.Size())
	line2 := fmt.Sprintf(" hits %d/%d miss %d evict %d",
		st.PinnedHits, st.Hits, st.Misses, st.Evictions)
	if e.archive != nil {
		line2 += fmt.Sprintf(" archived %d (%d KiB)", e.archive.Len(), e.archive.Bytes()/1024)
	}
	if e.status != "" && time.Since(e.statusTime) < parameter.StatusMessageTimeout {
		line2 += " | " + e.status
	}
	line2 += " | session " + e.session.String()[:8]

	e.drawLine(e.height-2, line1)
	e.drawLine(e.height-1, line2)
}

func (e *Explorer) drawLine(y int, text string) {
	x := 0
	for _, r := range text {
		if x >= e.width {
			return
		}
		e.screen.SetContent(x, y, r, nil, styleStatus)
		x++
	}
	for ; x < e.width; x++ {
		e.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
}

// run is the event and redraw loop
func (e *Explorer) run() {
	ticker := time.NewTicker(parameter.FrameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, parameter.EventQueueSize)
	quit := make(chan struct{})
	defer close(quit)
	goSafe(func() {
		for {
			ev := e.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	})

	e.draw()
	for {
		select {
		case ev := <-eventChan:
			if !e.handleInput(ev) {
				return
			}
		case <-ticker.C:
			e.draw()
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
