package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"eve-routes/internal/config"
	"eve-routes/internal/db"
	"eve-routes/internal/present"
	"eve-routes/internal/routes"
	"eve-routes/internal/search"
)

// uiState is the visible state of the screen.
type uiState int

const (
	stateIdle uiState = iota
	stateLoading
	stateError
)

// Form field indices.
const (
	fieldFrom = iota
	fieldTo
	fieldCargo
	fieldMinProfit
	fieldSalesTax
	fieldCount
)

// Model is the root bubbletea model for the search screen.
type Model struct {
	cfg     *config.Config
	client  *routes.Client
	mgr     *search.Manager
	store   *db.DB // nil when persistence is unavailable
	version string

	keymap KeyMap
	help   help.Model

	inputs [fieldCount]textinput.Model
	focus  int

	state     uiState
	formErr   string
	errMsg    string
	progress  search.Progress
	gen       uint64
	lastQuery *search.Query

	set     *routes.ResultSet
	summary present.Summary
	rows    []present.Row

	parentCtx context.Context
	healthy   bool
	probed    bool
	width     int
	height    int
}

// NewModel creates the search screen pre-filled from the config.
func NewModel(ctx context.Context, cfg *config.Config, client *routes.Client, store *db.DB, version string) Model {
	m := Model{
		cfg:       cfg,
		client:    client,
		mgr:       search.NewManager(client.Opportunities, cfg.MaxAttempts),
		store:     store,
		version:   version,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		parentCtx: ctx,
	}

	labels := [fieldCount]string{"jita", "dodixie", "33500", "100000", "8"}
	values := [fieldCount]string{
		cfg.FromStation,
		cfg.ToStation,
		formatFloat(cfg.CargoCapacity),
		formatFloat(cfg.MinProfit),
		formatFloat(cfg.SalesTax),
	}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.SetValue(values[i])
		in.CharLimit = 32
		in.Width = 24
		m.inputs[i] = in
	}
	m.inputs[fieldFrom].Focus()
	return m
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Init probes server health and starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.healthCmd())
}

func (m Model) healthCmd() tea.Cmd {
	client := m.client
	ctx := m.parentCtx
	return func() tea.Msg {
		probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return HealthMsg(client.HealthCheck(probeCtx))
	}
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case HealthMsg:
		m.healthy = bool(msg)
		m.probed = true
		return m, nil

	case TickMsg:
		// A tick stamped with a superseded generation dies here; only
		// the current attempt's stream may advance and re-arm, and it
		// self-terminates once that attempt resolves.
		if msg.Generation != m.gen || m.state != stateLoading || !m.mgr.Active() {
			return m, nil
		}
		m.progress.Advance(search.RandomStep())
		return m, tickCmd(m.gen)

	case SearchResultMsg:
		return m.handleResult(msg.Result)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.mgr.Cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Cancel):
		if m.state == stateLoading {
			// Superseding/cancelling is silent: no error state.
			m.mgr.Cancel()
			m.state = stateIdle
		} else if m.state == stateError {
			m.state = stateIdle
			m.errMsg = ""
		}
		return m, nil

	case key.Matches(msg, m.keymap.Retry) && m.state == stateError:
		m.errMsg = ""
		if m.lastQuery != nil {
			return m.startSearch(*m.lastQuery)
		}
		m.state = stateIdle
		return m, nil

	case key.Matches(msg, m.keymap.Submit):
		return m.submit()

	case key.Matches(msg, m.keymap.Next) && m.state != stateLoading:
		return m.moveFocus(1)

	case key.Matches(msg, m.keymap.Prev) && m.state != stateLoading:
		return m.moveFocus(-1)
	}

	if m.state == stateLoading {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	return m, m.inputs[m.focus].Focus()
}

// submit validates the form and, if valid, starts a search. Starting
// while one is in flight supersedes it (most-recent wins).
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.formErr = ""

	cargo, minProfit, salesTax, err := m.numericFields()
	if err != nil {
		m.formErr = err.Error()
		return m, nil
	}
	q, err := search.Build(
		m.inputs[fieldFrom].Value(),
		m.inputs[fieldTo].Value(),
		cargo, minProfit, salesTax,
	)
	if err != nil {
		m.formErr = err.Error()
		return m, nil
	}
	return m.startSearch(q)
}

func (m Model) numericFields() (cargo, minProfit, salesTax float64, err error) {
	parse := func(i int, name string) (float64, error) {
		s := strings.TrimSpace(m.inputs[i].Value())
		if s == "" {
			return 0, nil
		}
		v, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return 0, &fieldError{name}
		}
		return v, nil
	}
	if cargo, err = parse(fieldCargo, "cargo capacity"); err != nil {
		return
	}
	if minProfit, err = parse(fieldMinProfit, "minimum profit"); err != nil {
		return
	}
	salesTax, err = parse(fieldSalesTax, "sales tax")
	return
}

type fieldError struct{ field string }

func (e *fieldError) Error() string { return e.field + " must be a number" }

func (m Model) startSearch(q search.Query) (tea.Model, tea.Cmd) {
	m.lastQuery = &q
	m.errMsg = ""
	m.state = stateLoading
	m.progress = search.Progress{}

	gen, ch := m.mgr.Start(m.parentCtx, q)
	m.gen = gen
	return m, tea.Batch(tickCmd(gen), waitResultCmd(ch))
}

func (m Model) handleResult(r search.Result) (tea.Model, tea.Cmd) {
	if r.Generation != m.gen {
		return m, nil // stale delivery from a superseded search
	}

	switch r.Status {
	case search.StatusCancelled:
		// Silent: a newer request superseded this one, or the user
		// backed out. Never an error state.
		if m.state == stateLoading {
			m.state = stateIdle
		}
		return m, nil

	case search.StatusFailed:
		m.progress.Finish()
		m.state = stateError
		m.errMsg = r.Err.Error()
		return m, nil
	}

	m.progress.Finish()
	m.state = stateIdle
	m.set = r.Set
	m.summary = present.Summarize(r.Set.Opportunities)
	m.rows = present.Rank(r.Set.Opportunities)
	return m, m.persistCmd(r.Set)
}

// persistCmd saves the last-used parameters and records the search,
// off the update loop. Best-effort: persistence failures never affect
// the displayed result.
func (m Model) persistCmd(set *routes.ResultSet) tea.Cmd {
	if m.store == nil || m.lastQuery == nil {
		return nil
	}
	store, cfg, q := m.store, m.cfg, *m.lastQuery
	return func() tea.Msg {
		cfg.FromStation = q.FromStation
		cfg.ToStation = q.ToStation
		cfg.CargoCapacity = q.CargoCapacity
		cfg.MinProfit = q.MinProfit
		cfg.SalesTax = q.SalesTax
		store.SaveConfig(cfg)
		store.RecordSearch(set)
		return nil
	}
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, cfg *config.Config, client *routes.Client, store *db.DB, version string) error {
	model := NewModel(ctx, cfg, client, store, version)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
