package ui

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strconv"
	"strings"

	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/render"
	"github.com/automoto/lodis-galaga/scores"
	"github.com/automoto/lodis-galaga/shared/gamemath"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Action is what a click on the game over screen asks for.
type Action int

const (
	ActionNone Action = iota
	ActionRestart
	ActionMessage
)

// Button is a round screen button.
type Button struct {
	X, Y    float64
	Radius  float64
	Hovered bool
}

// Contains reports whether x, y is strictly inside the button.
func (b Button) Contains(x, y float64) bool {
	dx, dy := x-b.X, y-b.Y
	return dx*dx+dy*dy < b.Radius*b.Radius
}

// Summary is the finished run shown on the game over screen.
type Summary struct {
	Player  scores.Player
	Score   int
	Wave    int
	Time    float64 // seconds
	Top     []scores.Entry
	Rank    scores.Rank
	HasRank bool
}

const (
	wastedLetters  = "WASTED"
	touchTitleSize = 100
	statsOffset    = 90
	rowHeight      = 30
	defaultDT      = 1.0 / 60
)

// GameOver is the "WASTED" screen: title animation, run stats, the
// leaderboard and the restart and message buttons.
type GameOver struct {
	cfg cfg.GameOverConfig

	Restart Button
	Message Button

	// Heart and Envelope are the button icons. Either may be nil.
	Heart    render.Image
	Envelope render.Image

	// RenderText renders label graphics; swapped out in headless runs.
	RenderText func(s string, style render.Style) render.Graphic

	// TopCount is how many leaderboard rows are shown.
	TopCount int

	fade      *gween.Tween
	shrink    *gween.Tween
	alpha     float64
	scale     float64
	animating bool

	shakeTime      float64
	shakeIntensity float64
	elapsed        float64
	rand           func() float64

	cache  *render.TextCache
	labels map[string]*render.CachedLabel
}

func NewGameOver(c cfg.GameOverConfig, cache *render.TextCache) *GameOver {
	if cache == nil {
		cache = render.NewTextCache()
	}
	g := &GameOver{
		cfg:        c,
		Restart:    Button{X: c.RestartX, Y: c.RestartY, Radius: c.ButtonRadius},
		Message:    Button{X: c.MessageX, Y: c.MessageY, Radius: c.ButtonRadius},
		RenderText: render.RenderText,
		TopCount:   cfg.Score.TopCount,
		rand:       rand.Float64,
		cache:      cache,
		labels:     make(map[string]*render.CachedLabel),
	}
	if c.Touch {
		// Center the buttons between the screen edge and the first letter.
		spacing := touchTitleSize * 0.8
		startX := float64(cfg.C.Width)/2 - float64(len(wastedLetters))*spacing/2
		g.Restart.X = startX / 2
		g.Message.X = startX / 2
	}
	g.Reset()
	return g
}

// Reset restarts the title animation.
func (g *GameOver) Reset() {
	d := float32(g.cfg.AnimDuration)
	g.fade = gween.New(0, 255, d, ease.Linear)
	g.shrink = gween.New(float32(g.cfg.StartScale), float32(g.cfg.EndScale), d, ease.Linear)
	g.alpha = 0
	g.scale = g.cfg.StartScale
	g.animating = true
	g.shakeTime = 0
	g.shakeIntensity = 0
	g.elapsed = 0
	g.Restart.Hovered = false
	g.Message.Hovered = false
}

func (g *GameOver) Alpha() float64          { return g.alpha }
func (g *GameOver) Scale() float64          { return g.scale }
func (g *GameOver) Shaking() bool           { return g.shakeTime > 0 }
func (g *GameOver) ShakeIntensity() float64 { return g.shakeIntensity }

// Update advances the animations by dt seconds and tracks hover state
// for the pointer at mouseX, mouseY. A non-positive dt counts as one
// 60 Hz frame.
func (g *GameOver) Update(mouseX, mouseY, dt float64) {
	if dt <= 0 {
		dt = defaultDT
	}
	g.elapsed += dt

	if g.animating {
		a, _ := g.fade.Update(float32(dt))
		s, done := g.shrink.Update(float32(dt))
		g.alpha = float64(a)
		g.scale = float64(s)
		if done {
			g.animating = false
			g.shakeTime = g.cfg.ShakeDuration
			g.shakeIntensity = g.cfg.ShakeIntensity
		}
	}

	if g.shakeTime > 0 {
		g.shakeTime -= dt
		g.shakeIntensity = math.Max(0, g.shakeIntensity-dt*g.cfg.ShakeDecay)
	}

	if !g.cfg.Touch {
		g.Restart.Hovered = g.Restart.Contains(mouseX, mouseY)
		g.Message.Hovered = g.Message.Contains(mouseX, mouseY)
	}
}

// HandleClick resolves a click. The message button wins over restart. With
// a pointer the hover state decides; on touch the click position does.
func (g *GameOver) HandleClick(x, y float64) Action {
	if g.hit(g.Message, x, y) {
		return ActionMessage
	}
	if g.hit(g.Restart, x, y) {
		return ActionRestart
	}
	return ActionNone
}

func (g *GameOver) hit(b Button, x, y float64) bool {
	if g.cfg.Touch {
		return b.Contains(x, y)
	}
	return b.Hovered
}

// FormatScore groups digits in threes with spaces: 123 456 789.
func FormatScore(score int) string {
	s := strconv.Itoa(score)
	sign := ""
	if score < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.WriteString(sign)
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatTime renders whole seconds as m:ss.
func FormatTime(seconds float64) string {
	total := int(math.Floor(seconds))
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func truncateNick(nick string, limit int) string {
	r := []rune(nick)
	if limit <= 0 || len(r) <= limit {
		return nick
	}
	return string(r[:limit]) + "..."
}

func isCurrentRun(e scores.Entry, s Summary) bool {
	return e.Nick == s.Player.Nick &&
		math.Abs(float64(e.Score-s.Score)) < 1 &&
		math.Abs(e.Time-math.Floor(s.Time)) < 1
}

func (g *GameOver) label(key string) *render.CachedLabel {
	l, ok := g.labels[key]
	if !ok {
		l = render.NewCachedLabel(g.cache, "gameover-"+key)
		l.Render = g.RenderText
		g.labels[key] = l
	}
	return l
}

func (g *GameOver) text(ctx *render.Context, key string, x, y float64, s string, style render.Style) {
	g.label(key).Draw(ctx, x, y, s, style)
}

func withAlpha(c color.RGBA, a float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(gamemath.Clamp01(a/255) * 255)}
}

// Draw renders the screen for the finished run.
func (g *GameOver) Draw(ctx *render.Context, s Summary) {
	w, h := float64(cfg.C.Width), float64(cfg.C.Height)
	centerX := w / 2

	ctx.Scope(func(ctx *render.Context) {
		ctx.NoStroke()
		ctx.Fill(g.cfg.BackgroundColor)
		ctx.Rect(gamemath.Rect{W: w, H: h})

		// Vignette
		ctx.NoFill()
		for i := 1; i < 8; i++ {
			offset := float64(i * 40)
			ctx.Stroke(color.NRGBA{R: 10, G: 10, B: 15, A: uint8(20 - i*2)})
			ctx.StrokeWeight(float32(offset))
			ctx.Rect(gamemath.Rect{X: -offset, Y: -offset, W: w + offset*2, H: h + offset*2})
		}
	})

	g.drawTitle(ctx, centerX)

	statsY := g.cfg.TitleY + statsOffset
	g.text(ctx, "nick", centerX, statsY, s.Player.Nick, render.Style{
		Size: 24, Color: g.cfg.NickColor, Align: render.AlignCenter, Baseline: render.BaselineCenter,
	})
	stats := "Score: " + FormatScore(s.Score) + " • Wave: " + strconv.Itoa(s.Wave) + " • Time: " + FormatTime(s.Time)
	g.text(ctx, "stats", centerX, statsY+33, stats, render.Style{
		Size: 18, Color: g.cfg.StatsColor, Align: render.AlignCenter, Baseline: render.BaselineCenter,
	})

	congratsOffset := 0.0
	if s.HasRank && s.Rank.Rank >= 1 && s.Rank.Rank <= g.TopCount {
		pulse := math.Sin(g.elapsed*3)*0.15 + 0.85
		g.label("congrats").DrawScaled(ctx, centerX, statsY+63, congratsText(s.Rank.Rank), render.Style{
			Size: 20, Align: render.AlignCenter, Baseline: render.BaselineCenter,
		}, 1, withAlpha(g.cfg.CongratsColor, pulse*255))
		congratsOffset = 30
		if h <= 620 {
			congratsOffset = 15
		}
	}

	g.drawLeaderboard(ctx, centerX, statsY+80+congratsOffset, s)
	g.drawButtons(ctx)
}

func congratsText(rank int) string {
	switch rank {
	case 1:
		return "CONGRATULATIONS! YOU'RE #1!"
	case 2:
		return "GREAT JOB! YOU'RE #2!"
	case 3:
		return "AWESOME! YOU'RE #3!"
	default:
		return fmt.Sprintf("WELL DONE! YOU'RE #%d!", rank)
	}
}

func (g *GameOver) drawTitle(ctx *render.Context, centerX float64) {
	size := g.cfg.TitleSize
	if g.cfg.Touch {
		size = touchTitleSize
	}
	spacing := size * g.scale * 0.8
	startX := centerX - float64(len(wastedLetters))*spacing/2

	var shakeX, shakeY float64
	if g.shakeTime > 0 {
		shakeX = (g.rand() - 0.5) * g.shakeIntensity
		shakeY = (g.rand() - 0.5) * g.shakeIntensity
	}

	style := render.Style{Size: size, Color: color.White, Align: render.AlignCenter, Baseline: render.BaselineCenter}
	outline := color.NRGBA{A: uint8(g.alpha)}
	fill := withAlpha(g.cfg.TitleColor, g.alpha)
	for i, ch := range wastedLetters {
		x := startX + float64(i)*spacing + spacing/2 + shakeX
		y := g.cfg.TitleY + shakeY
		switch ch {
		case 'W':
			y += 10
		case 'D':
			y -= 10
		}
		l := g.label("wasted-" + string(ch))
		l.DrawScaled(ctx, x+3, y+3, string(ch), style, g.scale, outline)
		l.DrawScaled(ctx, x, y, string(ch), style, g.scale, fill)
	}
}

func (g *GameOver) drawLeaderboard(ctx *render.Context, centerX, top float64, s Summary) {
	n := g.TopCount
	g.text(ctx, "board-title", centerX, top, fmt.Sprintf("TOP %d RANKINGS", n), render.Style{
		Size: 20, Color: g.cfg.StatsColor, Align: render.AlignCenter, Baseline: render.BaselineCenter,
	})
	ctx.Scope(func(ctx *render.Context) {
		ctx.Stroke(cfg.DarkGray)
		ctx.StrokeWeight(1)
		ctx.Line(centerX-210, top+15, centerX+210, top+15)
	})

	tableY := top + 35
	cols := [4]float64{centerX - 200, centerX - 80, centerX + 40, centerX + 170}
	header := color.RGBA{R: 120, G: 120, B: 120, A: 255}
	for i, title := range [4]string{"#", "PLAYER", "SCORE", "TIME"} {
		align := render.AlignCenter
		if i == 0 {
			align = render.AlignLeft
		}
		g.text(ctx, "header-"+title, cols[i], tableY, title, render.Style{
			Size: 12, Color: header, Align: align, Baseline: render.BaselineCenter,
		})
	}

	pulse := math.Sin(g.elapsed*4)*0.3 + 0.7
	rows := s.Top
	if len(rows) > n {
		rows = rows[:n]
	}
	for i, e := range rows {
		y := tableY + float64(i+1)*rowHeight
		if isCurrentRun(e, s) {
			r := gamemath.Rect{X: cols[0] - 10, Y: y - rowHeight/2 + 2, W: 414, H: rowHeight - 4}
			ctx.Scope(func(ctx *render.Context) {
				ctx.Fill(color.NRGBA{R: 80, G: 60, A: uint8(150 * pulse)})
				ctx.Stroke(withAlpha(cfg.Gold, 180*pulse))
				ctx.StrokeWeight(2)
				ctx.Rect(r)
			})
		}
		c := g.cfg.RankColors[min(i, len(g.cfg.RankColors)-1)]
		size := 14.0
		switch i {
		case 0:
			size = 18
		case 1:
			size = 16
		}
		g.drawRow(ctx, fmt.Sprintf("row-%d", i), cols, y, strconv.Itoa(i+1), e, c, size)
	}

	for i := len(rows); i < n; i++ {
		y := tableY + float64(i+1)*rowHeight
		style := render.Style{Size: 14, Color: g.cfg.EmptyRowColor, Align: render.AlignCenter, Baseline: render.BaselineCenter}
		key := fmt.Sprintf("empty-%d", i)
		left := style
		left.Align = render.AlignLeft
		g.text(ctx, key+"-rank", cols[0], y, strconv.Itoa(i+1), left)
		for c := 1; c < 4; c++ {
			g.text(ctx, fmt.Sprintf("%s-%d", key, c), cols[c], y, "---", style)
		}
	}

	if s.HasRank && s.Rank.Rank > n {
		y := tableY + float64(n+1)*rowHeight
		ctx.Scope(func(ctx *render.Context) {
			ctx.Stroke(color.RGBA{R: 100, G: 100, B: 100, A: 255})
			ctx.StrokeWeight(1)
			ctx.Line(cols[0]-8, y-rowHeight/2+3, cols[3]+30, y-rowHeight/2+3)
			ctx.NoStroke()
			ctx.Fill(color.NRGBA{R: 60, A: 100})
			ctx.Rect(gamemath.Rect{X: cols[0] - 8, Y: y - rowHeight/2 + 6, W: 410, H: rowHeight - 6})
		})
		g.drawRow(ctx, "row-own", cols, y, strconv.Itoa(s.Rank.Rank)+".", s.Rank.Entry, g.cfg.NickColor, 14)
	}
}

func (g *GameOver) drawRow(ctx *render.Context, key string, cols [4]float64, y float64, rank string, e scores.Entry, c color.Color, size float64) {
	style := render.Style{Size: size, Color: c, Align: render.AlignCenter, Baseline: render.BaselineCenter}
	left := style
	left.Align = render.AlignLeft
	g.text(ctx, key+"-rank", cols[0], y, rank, left)
	g.text(ctx, key+"-nick", cols[1], y, truncateNick(e.Nick, cfg.Score.NickDisplay), style)
	g.text(ctx, key+"-score", cols[2], y, FormatScore(e.Score), style)
	g.text(ctx, key+"-time", cols[3], y, FormatTime(e.Time), style)
}

func (g *GameOver) drawButtons(ctx *render.Context) {
	// Double-pulse heartbeat.
	t := math.Mod(g.elapsed*4, 2*math.Pi)
	beat := math.Max(0, math.Sin(t*2)) + math.Max(0, math.Sin(t*2-0.3))
	heartbeat := 1 + beat*0.08
	glow := math.Sin(g.elapsed*3)*0.1 + 1

	scale := heartbeat
	if g.Restart.Hovered {
		scale *= 1.15
	}
	g.drawButton(ctx, g.Restart, scale, glow, g.cfg.RestartColor, g.Heart)

	scale = 1
	if g.Message.Hovered {
		scale = 1.15
	}
	g.drawButton(ctx, g.Message, scale, glow, g.cfg.MessageColor, g.Envelope)

	style := render.Style{Size: 28, Color: color.RGBA{R: 180, G: 180, B: 180, A: 255}, Align: render.AlignCenter, Baseline: render.BaselineCenter}
	g.text(ctx, "message-1", g.Message.X, g.Message.Y+g.Message.Radius+20, "Leave a", style)
	g.text(ctx, "message-2", g.Message.X, g.Message.Y+g.Message.Radius+48, "message", style)
}

func (g *GameOver) drawButton(ctx *render.Context, b Button, scale, glow float64, accent color.RGBA, icon render.Image) {
	r := b.Radius * scale
	ctx.Scope(func(ctx *render.Context) {
		if b.Hovered {
			ctx.NoFill()
			ctx.Stroke(withAlpha(accent, 100*glow))
			ctx.StrokeWeight(6)
			ctx.Circle(b.X, b.Y, r+10)
		}

		ctx.Fill(color.RGBA{R: 40, G: 40, B: 40, A: 255})
		ctx.Stroke(accent)
		ctx.StrokeWeight(3)
		if b.Hovered {
			ctx.Fill(color.RGBA{R: 60, G: 60, B: 60, A: 255})
			ctx.StrokeWeight(4)
		}
		ctx.Circle(b.X, b.Y, r)

		if icon != nil {
			size := b.Radius * 1.3 * scale
			ctx.SetImageMode(render.ImageModeCenter)
			ctx.Tint(accent)
			ctx.Image(icon, gamemath.Rect{X: b.X, Y: b.Y, W: size, H: size})
		}
	})
}
