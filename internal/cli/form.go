package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"poolgate/internal/pool"
)

// FormAction is what the user chose when the form closed
type FormAction int

const (
	ActionNone FormAction = iota
	ActionSubmit
	ActionVisit
)

// FormModel is the Bubble Tea model for the pool creation form. It only
// collects input; opening links happens after the program exits so the
// confirmation prompt owns the terminal.
type FormModel struct {
	page   *pool.Page
	width  int
	height int

	addressInput     textinput.Model
	solAmountInput   textinput.Model
	tokenAmountInput textinput.Model

	addressState     pool.FieldState
	solAmountState   pool.FieldState
	tokenAmountState pool.FieldState

	focus  int
	action FormAction
	notice string
}

// NewFormModel creates the form for a page
func NewFormModel(page *pool.Page) *FormModel {
	addressInput := textinput.New()
	addressInput.Placeholder = "Token mint address"
	addressInput.Focus()
	addressInput.CharLimit = AddressInputCharLimit
	addressInput.Width = AddressInputWidth

	solAmountInput := textinput.New()
	solAmountInput.Placeholder = "0.0"
	solAmountInput.CharLimit = AmountInputCharLimit
	solAmountInput.Width = AmountInputWidth

	tokenAmountInput := textinput.New()
	tokenAmountInput.Placeholder = "0"
	tokenAmountInput.CharLimit = AmountInputCharLimit
	tokenAmountInput.Width = AmountInputWidth

	return &FormModel{
		page:             page,
		addressInput:     addressInput,
		solAmountInput:   solAmountInput,
		tokenAmountInput: tokenAmountInput,
		solAmountState:   pool.FieldState{CanSubmit: true},
		tokenAmountState: pool.FieldState{CanSubmit: true},
		focus:            FocusAddress,
	}
}

// Init initializes the model
func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.action = ActionNone
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "tab", "down":
			m.setFocus((m.focus + 1) % MaxFocusSlots)
			return m, nil

		case "shift+tab", "up":
			m.setFocus((m.focus + MaxFocusSlots - 1) % MaxFocusSlots)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case FocusAddress:
		m.addressInput, cmd = m.addressInput.Update(msg)
		m.addressState = m.page.AddressChanged(m.addressInput.Value())
	case FocusSolAmount:
		m.solAmountInput, cmd = m.solAmountInput.Update(msg)
		m.solAmountState = m.page.AmountChanged(m.solAmountInput.Value())
	case FocusTokenAmount:
		m.tokenAmountInput, cmd = m.tokenAmountInput.Update(msg)
		m.tokenAmountState = m.page.AmountChanged(m.tokenAmountInput.Value())
	}

	return m, cmd
}

// handleEnter moves to the next field, or closes the form on a button
func (m *FormModel) handleEnter() (tea.Model, tea.Cmd) {
	switch m.focus {
	case FocusSubmit:
		if m.addressInput.Value() == "" {
			m.notice = pool.DescAddressRequired
			return m, nil
		}
		if !m.CanSubmit() {
			m.notice = pool.MsgFixAddress
			return m, nil
		}
		m.action = ActionSubmit
		return m, tea.Quit

	case FocusVisit:
		m.action = ActionVisit
		return m, tea.Quit

	default:
		m.setFocus(m.focus + 1)
		return m, nil
	}
}

func (m *FormModel) setFocus(focus int) {
	m.focus = focus
	m.notice = ""

	inputs := []*textinput.Model{&m.addressInput, &m.solAmountInput, &m.tokenAmountInput}
	for i, input := range inputs {
		if i == focus {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

// CanSubmit reports whether the create button is enabled
func (m *FormModel) CanSubmit() bool {
	return m.addressState.CanSubmit && m.solAmountState.CanSubmit && m.tokenAmountState.CanSubmit
}

// Action returns what the user chose
func (m *FormModel) Action() FormAction {
	return m.action
}

// Form returns the current form values
func (m *FormModel) Form() pool.Form {
	return pool.Form{
		TokenAddress: m.addressInput.Value(),
		SolAmount:    m.solAmountInput.Value(),
		TokenAmount:  m.tokenAmountInput.Value(),
	}
}

// View renders the UI
func (m *FormModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Create Liquidity Pool"))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Network: %s", m.page.Network().Display())))
	b.WriteString("\n\n")

	m.viewField(&b, "Token Mint Address", m.addressInput, m.addressState)
	m.viewField(&b, "SOL Amount", m.solAmountInput, m.solAmountState)
	m.viewField(&b, "Token Amount", m.tokenAmountInput, m.tokenAmountState)

	b.WriteString("\n")
	b.WriteString(m.viewButton(FocusSubmit, "Create Pool on Raydium", m.CanSubmit()))
	b.WriteString("  ")
	b.WriteString(m.viewButton(FocusVisit, "Visit Raydium", true))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(WarningStyle.Render("⚠ " + m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(InfoStyle.Render("Use Tab to switch fields, Enter to continue, Esc to quit"))
	b.WriteString("\n")

	return b.String()
}

func (m *FormModel) viewField(b *strings.Builder, label string, input textinput.Model, state pool.FieldState) {
	b.WriteString(HeaderStyle.Render(label))
	b.WriteString("\n")
	b.WriteString(input.View())
	b.WriteString("\n")
	if state.Error != "" {
		b.WriteString(ErrorStyle.Render("✗ " + state.Error))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m *FormModel) viewButton(slot int, label string, enabled bool) string {
	text := "[ " + label + " ]"
	cursor := "  "
	if m.focus == slot {
		cursor = "▸ "
	}
	switch {
	case !enabled:
		return cursor + DisabledStyle.Render(text)
	case m.focus == slot:
		return SelectedStyle.Render(cursor + text)
	default:
		return UnselectedStyle.Render(cursor + text)
	}
}

// RunForm runs the interactive form and then performs the chosen action
func (r *Runtime) RunForm(network string) error {
	page, err := r.page(network)
	if err != nil {
		return err
	}

	model := NewFormModel(page)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("form failed: %w", err)
	}

	m, ok := final.(*FormModel)
	if !ok {
		return nil
	}
	return r.finishForm(page, m)
}

func (r *Runtime) finishForm(page *pool.Page, m *FormModel) error {
	var outcome pool.Outcome
	switch m.Action() {
	case ActionSubmit:
		outcome = page.Submit(m.Form())
	case ActionVisit:
		outcome = page.VisitDEX()
	default:
		return nil
	}

	if outcome != pool.OutcomeOpened {
		return ErrNotOpened
	}
	return nil
}
