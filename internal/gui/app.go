package gui

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/render"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 12, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

// Surface draws onto the current raylib frame. Draw calls are only
// valid between BeginDrawing and EndDrawing.
type Surface struct{}

func (Surface) FillCircle(center field.Vec2, radius float64, c color.RGBA) {
	rl.DrawCircleV(
		rl.NewVector2(float32(center.X), float32(center.Y)),
		float32(radius),
		rl.NewColor(c.R, c.G, c.B, c.A))
}

func (Surface) StrokeLine(p0, p1 field.Vec2, width float64, c color.RGBA) {
	rl.DrawLineEx(
		rl.NewVector2(float32(p0.X), float32(p0.Y)),
		rl.NewVector2(float32(p1.X), float32(p1.Y)),
		float32(width),
		rl.NewColor(c.R, c.G, c.B, c.A))
}

type App struct {
	Field      *field.Field
	Dt         float64
	Time       float64
	Running    bool
	Background rl.Color
	surface    Surface
}

func NewApp(f *field.Field, dt float64, background color.RGBA) *App {
	return &App{
		Field:      f,
		Dt:         dt,
		Running:    true,
		Background: rl.NewColor(background.R, background.G, background.B, 255),
	}
}

// Run opens a window sized to the field and drives it at 60fps until
// the window closes or Q is pressed.
func Run(f *field.Field, dt float64, background color.RGBA) {
	app := NewApp(f, dt, background)

	rl.InitWindow(int32(f.Bounds.Width), int32(f.Bounds.Height), "plexus")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)

	for !rl.WindowShouldClose() {
		if app.Update() {
			break
		}
		app.Draw()
	}
}

// Update handles input and advances the field. It reports whether the
// app should quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Field.Populate()
		a.Time = 0
	}

	if a.Running {
		a.Field.Step(a.Dt)
		a.Time += a.Dt
	}
	return false
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.Background)

	render.Draw(a.Field, a.surface)
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	h := int32(a.Field.Bounds.Height)
	w := int32(a.Field.Bounds.Width)

	rl.DrawText("plexus", 20, 20, 20, ColSelect)
	rl.DrawText(fmt.Sprintf(":: %d particles  %d links", len(a.Field.Particles), a.Field.Links()), 110, 24, 12, ColText)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	rl.DrawText(status, w-100, 20, 12, col)

	rl.DrawText("[SPACE] PAUSE  [R] RESEED  [Q] QUIT", w-280, h-30, 10, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 20, h-30, 10, ColTextDim)
}
