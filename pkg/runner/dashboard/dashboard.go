package dashboard

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/innervoice/pkg/analytics"
	"tableflip.dev/innervoice/pkg/app"
	"tableflip.dev/innervoice/pkg/emotion"
	"tableflip.dev/innervoice/pkg/store"
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
)

const trendDays = 14

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	rangeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
)

// Model is the live analytics dashboard. Tab cycles the range, a adds an
// entry, e exports the range as CSV and the store watch keeps it current.
type Model struct {
	ctx context.Context
	svc *app.Service

	rng    analytics.Range
	report analytics.Report
	loaded bool

	// Dir is where exports are written.
	Dir string
	Now func() time.Time

	mode  mode
	input textinput.Model

	width  int
	height int
	status string

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New builds a dashboard over svc starting at r.
func New(ctx context.Context, svc *app.Service, r analytics.Range) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	ti := textinput.New()
	ti.Placeholder = "How are you feeling?"
	ti.CharLimit = 2048
	ti.Prompt = "> "
	return &Model{
		ctx:   ctx,
		svc:   svc,
		rng:   r,
		input: ti,
		Dir:   ".",
	}
}

// Run starts the dashboard on the alternate screen.
func Run(ctx context.Context, svc *app.Service, r analytics.Range, dir string) error {
	m := New(ctx, svc, r)
	if dir != "" {
		m.Dir = dir
	}
	defer m.stopWatch()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type reportLoadedMsg struct {
	report analytics.Report
}

type entryAddedMsg struct {
	label string
}

type exportedMsg struct {
	path string
}

type errMsg struct{ err error }

func (m *Model) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), startWatchCmd(m.ctx, m.svc))
}

func (m *Model) refresh() tea.Cmd {
	if m.svc == nil {
		return nil
	}
	svc, ctx, r, now := m.svc, m.ctx, m.rng, m.now()
	return func() tea.Msg {
		report, err := svc.Analyze(ctx, r, now)
		if err != nil {
			return errMsg{err}
		}
		return reportLoadedMsg{report: report}
	}
}

func (m *Model) export() tea.Cmd {
	if m.svc == nil {
		return nil
	}
	svc, ctx, r, now, dir := m.svc, m.ctx, m.rng, m.now(), m.Dir
	return func() tea.Msg {
		name, csv, err := svc.Export(ctx, r, now)
		if err != nil {
			return errMsg{err}
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
			return errMsg{err}
		}
		return exportedMsg{path: path}
	}
}

func (m *Model) add(content string) tea.Cmd {
	if m.svc == nil {
		return nil
	}
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		e, err := svc.Add(ctx, content)
		if err != nil {
			return errMsg{err}
		}
		label := e.EmotionString()
		if label == "" {
			label = "unclassified"
		}
		return entryAddedMsg{label: label}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case reportLoadedMsg:
		m.report = msg.report
		m.loaded = true
	case entryAddedMsg:
		m.status = "Added (" + msg.label + ")"
		cmds = append(cmds, m.refresh())
	case exportedMsg:
		m.status = "Exported " + msg.path
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case watchStartedMsg:
		if msg.err != nil {
			m.status = "ERR: watch " + msg.err.Error()
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		cmds = append(cmds, m.refresh())
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
		cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
	case tea.KeyPressMsg:
		if m.mode == modeAdd {
			cmds = append(cmds, m.handleAddKey(msg))
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.stopWatch()
			return m, tea.Quit
		case "tab":
			m.rng = m.rng.Next()
			m.status = ""
			cmds = append(cmds, m.refresh())
		case "r":
			m.status = "Refreshed"
			cmds = append(cmds, m.refresh())
		case "e":
			cmds = append(cmds, m.export())
		case "a":
			m.mode = modeAdd
			m.input.SetValue("")
			if cmd := m.input.Focus(); cmd != nil {
				cmds = append(cmds, cmd)
			}
			cmds = append(cmds, textinput.Blink)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleAddKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		content := strings.TrimSpace(m.input.Value())
		m.leaveAdd()
		if content == "" {
			m.status = "Add cancelled"
			return nil
		}
		m.status = "Classifying..."
		return m.add(content)
	case "esc":
		m.leaveAdd()
		m.status = "Add cancelled"
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) leaveAdd() {
	m.mode = modeNormal
	m.input.Reset()
	m.input.Blur()
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("InnerVoice"))
	b.WriteString("  ")
	b.WriteString(rangeStyle.Render(m.rng.Label()))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(faintStyle.Render("Loading..."))
		b.WriteString("\n")
	case m.report.Empty():
		b.WriteString("No emotion data available for this time range.\n")
	default:
		b.WriteString(m.summaryView(m.report.Summary))
		b.WriteString("\n")
		b.WriteString(m.distributionView(m.report.Distribution))
		b.WriteString("\n")
		b.WriteString(m.trendView(m.report.Trend))
	}

	b.WriteString("\n")
	if m.mode == modeAdd {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		if strings.HasPrefix(m.status, "ERR:") {
			b.WriteString(errStyle.Render(m.status))
		} else {
			b.WriteString(m.status)
		}
		b.WriteString("\n")
	}
	b.WriteString(faintStyle.Render(m.helpLine()))
	return b.String()
}

func (m *Model) helpLine() string {
	if m.mode == modeAdd {
		return "enter save · esc cancel"
	}
	return "tab range · a add · e export · r refresh · q quit"
}

func labelStyle(l emotion.Label) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color()))
}

func (m *Model) summaryView(s *analytics.Summary) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Summary"))
	b.WriteString("\n")
	mc := s.MostCommon
	fmt.Fprintf(&b, "  Most common  %s %s (%d, %.0f%%)\n",
		labelStyle(mc.Label).Render(mc.Label.Glyph().Symbol), labelStyle(mc.Label).Render(mc.Label.Title()), mc.Count, s.Share())
	fmt.Fprintf(&b, "  Classified   %d\n", s.TotalClassified)
	if s.Rated() == 0 {
		b.WriteString("  Accuracy     " + faintStyle.Render("no feedback yet") + "\n")
	} else {
		fmt.Fprintf(&b, "  Accuracy     %.1f%% (%d of %d rated)\n", s.AccuracyRate, s.Accurate, s.Rated())
	}
	return b.String()
}

func (m *Model) barWidth() int {
	w := m.width - 24
	switch {
	case w < 10:
		return 10
	case w > 50:
		return 50
	}
	return w
}

func (m *Model) distributionView(slices []analytics.Slice) string {
	total := 0
	for _, s := range slices {
		total += s.Count
	}
	width := m.barWidth()
	var b strings.Builder
	b.WriteString(headerStyle.Render("Distribution"))
	b.WriteString("\n")
	for _, s := range slices {
		share := 0.0
		if total > 0 {
			share = float64(s.Count) / float64(total)
		}
		filled := int(share*float64(width) + 0.5)
		bar := labelStyle(s.Label).Render(strings.Repeat("█", filled)) + faintStyle.Render(strings.Repeat("░", width-filled))
		fmt.Fprintf(&b, "  %-8s %s %d\n", s.Label.String(), bar, s.Count)
	}
	return b.String()
}

// trendView shows the dominant label of the most recent days, one per row.
func (m *Model) trendView(buckets []analytics.DayBucket) string {
	if len(buckets) > trendDays {
		buckets = buckets[len(buckets)-trendDays:]
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("Trend"))
	b.WriteString("\n")
	for _, day := range buckets {
		label, value := dominant(day)
		fmt.Fprintf(&b, "  %s  %s %-8s %3.0f%%  %s\n", day.Date,
			labelStyle(label).Render(label.Glyph().Symbol), label.String(), value*100,
			faintStyle.Render(fmt.Sprintf("%d entries", day.Count)))
	}
	return b.String()
}

// dominant picks the label with the highest daily value, palette order
// breaking ties.
func dominant(day analytics.DayBucket) (emotion.Label, float64) {
	best, value := emotion.Neutral, -1.0
	for _, l := range emotion.Labels() {
		if v := day.Mean(l); v > value {
			best, value = l, v
		}
	}
	return best, value
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}
