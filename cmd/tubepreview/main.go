// Command tubepreview is an interactive front-end over the tubesim
// engine: it steps a simulation live, renders the pressure field every
// frame, and optionally plays the listener's samples as audio. It is
// grounded on the teacher's game.go (Game/Update/newGame), render.go
// (Draw's wall-overlay pixel writes), and audio_center.go
// (centerAudioStream's AC-coupled single-sample io.Reader), retargeted
// from the teacher's free-roaming wave-garden toy onto a fixed-scene,
// fixed-listener FDTD run per spec.md §4.7/§6.
package main

import (
	"flag"
	"image/color"
	"io"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"tubesim/cellkind"
	"tubesim/config"
	"tubesim/driver"
)

var (
	sceneFlag     = flag.String("scene", "open_air", "open_air | closed_tube | vertical_wall | open_tube | vowel")
	vowelFlag     = flag.String("vowel", "a", "a | u | i (scene=vowel only)")
	pmlFlag       = flag.Bool("pml", true, "enable PML absorption at the outer border")
	pmlLayers     = flag.Int("pml-layers", 6, "number of graded PML rings")
	domainW       = flag.Int("domain-w", 120, "interior width in cells")
	domainH       = flag.Int("domain-h", 120, "interior height in cells")
	tubeLength    = flag.Int("tube-length", 80, "tube length in cells (closed_tube/open_tube)")
	tubeWidth     = flag.Int("tube-width", 8, "tube width in cells (closed_tube/open_tube)")
	sourceKind    = flag.String("source", "sinusoid", "sinusoid | gaussian | impulse")
	sourceFreq    = flag.Float64("source-freq", 220, "source frequency in Hz (sinusoid/gaussian)")
	durationMS    = flag.Int("duration-ms", 60000, "total simulated duration in milliseconds")
	showWallsFlag = flag.Bool("show-walls", true, "render wall/PML/excitation overlays")
	enableAudio   = flag.Bool("enable-audio", false, "play the listener signal as live audio")
	cellPixels    = flag.Int("cell-pixels", 4, "on-screen pixels per grid cell")
)

const audioSampleRate = 48000
const stepsPerTick = 32 // simulation steps advanced per 60Hz Ebiten tick

// previewAudioStream exposes the listener's most recent sample as a flat
// stereo PCM stream, AC-coupled the same way the teacher's
// centerAudioStream removes a slowly drifting DC bias before playback.
type previewAudioStream struct {
	mu     sync.Mutex
	sample float32
	dc     float32
}

func (s *previewAudioStream) SetSample(v float32) {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	s.mu.Lock()
	const alpha = 0.001
	s.dc += alpha * (v - s.dc)
	s.sample = v - s.dc
	s.mu.Unlock()
}

func (s *previewAudioStream) Read(p []byte) (int, error) {
	frameBytes := len(p) - len(p)%4
	if frameBytes == 0 {
		return 0, nil
	}
	s.mu.Lock()
	v := int16(s.sample * 32767)
	s.mu.Unlock()
	for i := 0; i < frameBytes; i += 4 {
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return frameBytes, nil
}

func (s *previewAudioStream) Close() error { return nil }

func (s *previewAudioStream) Seek(offset int64, whence int) (int64, error) {
	if offset == 0 {
		switch whence {
		case io.SeekStart, io.SeekCurrent, io.SeekEnd:
			return 0, nil
		}
	}
	return 0, io.ErrUnexpectedEOF
}

// Game steps one Simulation live and renders its pressure field, the
// way the teacher's Game steps its own wave field and walls each tick.
type Game struct {
	sim         *driver.Simulation
	audioStream *previewAudioStream
	cellSize    int
}

func (g *Game) Update() error {
	for i := 0; i < stepsPerTick && !g.sim.Done(); i++ {
		out, err := g.sim.Step()
		if err != nil {
			return err
		}
		if g.audioStream != nil {
			g.audioStream.SetSample(float32(out))
		}
	}
	return nil
}

func wallColor(k cellkind.CellKind) (color.RGBA, bool) {
	switch {
	case k == cellkind.Air:
		return color.RGBA{}, false
	case k == cellkind.Wall:
		return color.RGBA{30, 40, 80, 255}, true
	case k == cellkind.Excitation:
		return color.RGBA{200, 40, 40, 255}, true
	case k == cellkind.NoPressure:
		return color.RGBA{40, 160, 80, 255}, true
	case k == cellkind.Dead:
		return color.RGBA{0, 0, 0, 255}, true
	default:
		if _, ok := cellkind.IsPml(k); ok {
			return color.RGBA{60, 20, 90, 255}, true
		}
		return color.RGBA{}, false
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	grid := g.sim.Grid()
	p := grid.PSlice()
	for r := 0; r < grid.H; r++ {
		for c := 0; c < grid.W; c++ {
			idx := grid.Index(r, c)
			var clr color.RGBA
			if *showWallsFlag {
				if wc, ok := wallColor(grid.Type[idx]); ok {
					clr = wc
				} else {
					clr = pressureColor(p[idx])
				}
			} else {
				clr = pressureColor(p[idx])
			}
			x0, y0 := c*g.cellSize, r*g.cellSize
			for dy := 0; dy < g.cellSize; dy++ {
				for dx := 0; dx < g.cellSize; dx++ {
					screen.Set(x0+dx, y0+dy, clr)
				}
			}
		}
	}
	ebitenutil.DebugPrint(screen, "tubepreview")
}

func pressureColor(p float64) color.RGBA {
	v := p * 4000
	if v > 255 {
		v = 255
	} else if v < -255 {
		v = -255
	}
	if v >= 0 {
		return color.RGBA{uint8(v), uint8(v), 255, 255}
	}
	return color.RGBA{255, uint8(-v), uint8(-v), 255}
}

func (g *Game) Layout(_, _ int) (int, int) {
	grid := g.sim.Grid()
	return grid.W * g.cellSize, grid.H * g.cellSize
}

func main() {
	flag.Parse()

	cfg := config.Config{
		Mode: "2d", PML: *pmlFlag, PMLLayers: *pmlLayers,
		Scene: *sceneFlag, Vowel: *vowelFlag,
		DomainW: *domainW, DomainH: *domainH,
		TubeLength: *tubeLength, TubeWidth: *tubeWidth,
		SRateMultiplier: 1,
		SourceKind:      *sourceKind, SourceFreq: *sourceFreq,
		SourceFMin: 100, SourceFMax: 4000, SourceSeed: 1,
		DurationMS: *durationMS,
	}

	sim, err := driver.Build(cfg)
	if err != nil {
		log.Fatalf("tubepreview: %v", err)
	}
	for _, w := range sim.Warnings {
		log.Printf("tubepreview: warning: %s", w.Message)
	}

	g := &Game{sim: sim, cellSize: *cellPixels}

	if *enableAudio {
		stream := &previewAudioStream{}
		g.audioStream = stream
		ctx := audio.NewContext(audioSampleRate)
		player, err := ctx.NewPlayer(stream)
		if err != nil {
			log.Fatalf("tubepreview: audio player: %v", err)
		}
		player.Play()
	}

	grid := sim.Grid()
	ebiten.SetWindowSize(grid.W*g.cellSize, grid.H*g.cellSize)
	ebiten.SetWindowTitle("Tube Simulation Preview")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
