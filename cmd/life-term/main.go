// Command life-term runs the simulation in a terminal. Each character cell
// shows two grid rows as a half block; drag with the left button to splat.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"life-sim/internal/app"
	"life-sim/internal/core"
	"life-sim/pkg/sims/life"

	"github.com/gdamore/tcell/v2"
)

const frameRate = 60

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err = screen.Init(); err != nil {
		log.Fatalf("initializing screen: %v", err)
	}

	logFile, err := os.CreateTemp("", "life-term-*.log")
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	defer logFile.Close()
	logger := cfg.InstallLogger(logFile)

	cols, rows := screen.Size()
	engineCfg, err := cfg.EngineConfig(cols, rows*2)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	sim, err := life.New(engineCfg)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	logger.Info("starting", "w", sim.Size().W, "h", sim.Size().H, "log", logFile.Name())

	d := newDriver(screen, sim, cfg.TPS)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second / frameRate)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	d.run()
	close(done)
	screen.Fini()
	logger.Info("stopped", "generation", sim.Generation())
}

// driver owns the event loop of the terminal front end.
type driver struct {
	screen tcell.Screen
	sim    *life.Engine
	pacer  *core.FixedStep
	buf    []byte

	seed     int64
	paused   bool
	tickOnce bool

	// Pointer state of the previous mouse event.
	held         bool
	lastX, lastY int
}

// newDriver drives sim; R resets to the seed the engine started from.
func newDriver(screen tcell.Screen, sim *life.Engine, tps int) *driver {
	screen.EnableMouse()
	size := sim.Size()
	return &driver{
		screen: screen,
		sim:    sim,
		pacer:  core.NewFixedStep(tps),
		buf:    make([]byte, 4*size.W*size.H),
		seed:   sim.Config().Seed,
		lastX:  -1,
		lastY:  -1,
	}
}

func (d *driver) run() {
	d.draw()
	for {
		if d.handle(d.screen.PollEvent()) {
			return
		}
	}
}

// handle processes one event and reports whether the driver should exit.
func (d *driver) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		return true
	case *tcell.EventKey:
		return d.key(ev)
	case *tcell.EventMouse:
		d.mouse(ev)
	case *tcell.EventResize:
		d.screen.Sync()
		d.draw()
	case *tcell.EventInterrupt:
		d.tick()
	}
	return false
}

func (d *driver) key(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return false
	}
	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		d.paused = !d.paused
	case 'n':
		d.tickOnce = true
	case 'r':
		d.sim.Reset(d.seed)
		d.draw()
	case 's':
		d.seed = time.Now().UnixNano()
		d.sim.Reset(d.seed)
		d.draw()
	}
	return false
}

// mouse converts a terminal cell position into a normalised pointer event
// at the centre of the two grid rows the cell covers. Only a move to a new
// cell while a button stays held counts as a drag; the press itself does not.
func (d *driver) mouse(ev *tcell.EventMouse) {
	size := d.sim.Size()
	x, y := ev.Position()
	pressed := ev.Buttons()&(tcell.Button1|tcell.Button2|tcell.Button3) != 0
	moved := x != d.lastX || y != d.lastY
	dragging := pressed && d.held && moved
	d.held, d.lastX, d.lastY = pressed, x, y
	if x < 0 || y < 0 || x >= size.W || 2*y >= size.H {
		return
	}
	var buttons core.ButtonMask
	if ev.Buttons()&tcell.Button1 != 0 {
		buttons |= core.ButtonPrimary
	}
	if ev.Buttons()&tcell.Button2 != 0 {
		buttons |= core.ButtonSecondary
	}
	if ev.Buttons()&tcell.Button3 != 0 {
		buttons |= core.ButtonMiddle
	}
	d.sim.Pointer(core.PointerEvent{
		X:        (float64(x) + 0.5) / float64(size.W),
		Y:        float64(2*y+1) / float64(size.H),
		Buttons:  buttons,
		Dragging: dragging,
	})
}

func (d *driver) tick() {
	stepped := false
	if d.tickOnce || (!d.paused && d.pacer.ShouldStep()) {
		d.sim.Step()
		d.tickOnce = false
		stepped = true
	}
	if stepped || d.paused {
		d.draw()
	}
}

func (d *driver) draw() {
	d.sim.Draw(d.buf)
	size := d.sim.Size()
	cols, rows := d.screen.Size()
	for y := 0; y < rows && 2*y < size.H; y++ {
		for x := 0; x < cols && x < size.W; x++ {
			top := pixel(d.buf, size.W, x, 2*y)
			bottom := tcell.ColorBlack
			if 2*y+1 < size.H {
				bottom = pixel(d.buf, size.W, x, 2*y+1)
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			d.screen.SetContent(x, y, '▀', nil, style)
		}
	}
	d.screen.Show()
}

func pixel(buf []byte, w, x, y int) tcell.Color {
	i := 4 * (y*w + x)
	return tcell.NewRGBColor(int32(buf[i]), int32(buf[i+1]), int32(buf[i+2]))
}
