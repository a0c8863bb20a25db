// Interactive terminal client for the warehouse copilot backend.
// This file implements the chat model using bubbletea.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"warecopilot/copilot"
	"warecopilot/gateway"
)

const requestTimeout = 30 * time.Second

type transcriptEntry struct {
	kind copilot.MessageKind
	text string
}

// chatModel is the main model for the interactive client.
type chatModel struct {
	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	styles    styles
	ready     bool
	width     int
	height    int

	transcript []transcriptEntry
	grid       copilot.GridView
	draft      *copilot.RowDraft

	// busy is the single in-flight command lock: while a dispatched
	// turn runs, new utterances are rejected. Grid-local edit, save and
	// delete intentionally bypass it.
	busy      bool
	sessionID string
	session   *copilot.SessionState

	gw         *gateway.Client
	dispatcher *copilot.Dispatcher
}

// Messages for tea updates.
type (
	turnDoneMsg struct {
		entries   []transcriptEntry
		grid      *copilot.GridView
		openFirst bool
		formOpen  bool
	}
	gridMsg struct {
		view copilot.GridView
	}
	rowSavedMsg struct {
		err error
	}
	rowDeletedMsg struct {
		index int
		err   error
	}
	voiceMsg struct {
		text string
		err  error
	}
	confirmedMsg struct {
		grnID int64
		err   error
	}
)

func initChatModel(gw *gateway.Client) chatModel {
	st := defaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Type a command... (Enter to send, :help for grid commands, Ctrl+C to exit)"
	ti.Focus()
	ti.Prompt = "│ "
	ti.CharLimit = 1024
	ti.Width = 80
	ti.PromptStyle = st.prompt

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.spinner

	vp := viewport.New(80, 16)
	vp.SetContent("")

	return chatModel{
		textinput: ti,
		spinner:   sp,
		viewport:  vp,
		styles:    st,
		grid:      copilot.GridView{EditRow: -1},
		sessionID: uuid.NewString(),
		session:   copilot.NewSessionState(),
		gw:        gw,
		dispatcher: &copilot.Dispatcher{
			Inventory: gw,
			Mutator:   gw,
			Chatter:   gw,
		},
		transcript: []transcriptEntry{
			{copilot.MessageSystem, "Warehouse Copilot ready. Try \"check inventory\" or \"receive stock\"."},
		},
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleSubmit()
		}
		// Typing stays live while a turn is in flight so grid commands
		// can still be entered; only plain utterances are gated.
		m.textinput, tiCmd = m.textinput.Update(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		transcriptHeight := msg.Height - gridHeight(m.grid) - 6
		if transcriptHeight < 4 {
			transcriptHeight = 4
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, transcriptHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = transcriptHeight
		}
		m.textinput.Width = msg.Width - 4
		m.refreshTranscript()

	case spinner.TickMsg:
		if m.busy {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}

	case turnDoneMsg:
		m.busy = false
		m.transcript = append(m.transcript, msg.entries...)
		if msg.grid != nil {
			m.grid = *msg.grid
			m.draft = nil
			if msg.openFirst && len(m.grid.Rows) > 0 {
				m.grid.OpenRow(0)
				d := copilot.DraftFromRow(m.grid.Rows[0])
				m.draft = &d
			}
		}
		if msg.formOpen {
			m.transcript = append(m.transcript, transcriptEntry{
				copilot.MessageSystem,
				"Receiving form: :receive customer; date; warehouse; reference; item; location; qty; status",
			})
		}
		m.refreshTranscript()

	case gridMsg:
		m.grid = msg.view
		m.draft = nil
		if msg.view.Failed {
			m.transcript = append(m.transcript, transcriptEntry{copilot.MessageError, "❌ Failed to load inventory."})
		}
		m.refreshTranscript()

	case rowSavedMsg:
		if msg.err != nil {
			m.transcript = append(m.transcript, transcriptEntry{copilot.MessageError, "❌ " + msg.err.Error()})
			m.refreshTranscript()
			break
		}
		m.transcript = append(m.transcript, transcriptEntry{copilot.MessageSuccess, "✅ Row saved."})
		m.draft = nil
		m.grid.CloseEdit()
		return m, m.refreshGridCmd(m.grid.Filter)

	case rowDeletedMsg:
		if msg.err != nil {
			m.transcript = append(m.transcript, transcriptEntry{copilot.MessageError, "❌ " + msg.err.Error()})
		} else {
			m.grid.RemoveRow(msg.index)
			m.draft = nil
			m.transcript = append(m.transcript, transcriptEntry{copilot.MessageSuccess, "✅ Row deleted."})
		}
		m.refreshTranscript()

	case voiceMsg:
		m.busy = false
		if msg.err != nil {
			m.transcript = append(m.transcript, transcriptEntry{copilot.MessageError, "❌ Voice input failed: " + msg.err.Error()})
		} else {
			m.textinput.SetValue(msg.text)
			m.transcript = append(m.transcript, transcriptEntry{copilot.MessageSystem, "Transcribed: " + msg.text})
		}
		m.refreshTranscript()

	case confirmedMsg:
		m.busy = false
		if msg.err != nil {
			m.transcript = append(m.transcript, transcriptEntry{copilot.MessageError, "❌ " + msg.err.Error()})
			m.refreshTranscript()
			break
		}
		m.transcript = append(m.transcript, transcriptEntry{copilot.MessageSuccess, fmt.Sprintf("✅ Receiving confirmed. GRN #%d created.", msg.grnID)})
		return m, m.refreshGridCmd(copilot.Filter{})
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

func (m chatModel) handleSubmit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.textinput.Value())
	if text == "" {
		return m, nil
	}

	if strings.HasPrefix(text, ":") {
		m.textinput.SetValue("")
		return m.handleCommand(text)
	}

	if m.busy {
		return m, nil
	}

	m.busy = true
	m.transcript = append(m.transcript, transcriptEntry{copilot.MessageUser, text})
	m.textinput.SetValue("")
	m.refreshTranscript()
	return m, tea.Batch(m.dispatchTurn(text), m.spinner.Tick)
}

// handleCommand runs the grid-local commands. These bypass the busy
// lock: editing a visible row must stay possible while a chat turn is
// in flight.
func (m chatModel) handleCommand(text string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(text)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case ":help":
		m.transcript = append(m.transcript, transcriptEntry{copilot.MessageSystem, commandHelp})

	case ":refresh":
		return m, m.refreshGridCmd(m.grid.Filter)

	case ":open":
		i, err := rowIndex(args, len(m.grid.Rows))
		if err != nil {
			m.transcript = append(m.transcript, transcriptEntry{copilot.MessageError, "❌ " + err.Error()})
			break
		}
		m.grid.OpenRow(i)
		d := copilot.DraftFromRow(m.grid.Rows[i])
		m.draft = &d

	case ":set":
		if m.draft == nil {
			m.transcript = append(m.transcript, transcriptEntry{copilot.MessageError, "❌ No row open for edit. Use :open N first."})
			break
		}
		if len(args) < 2 {
			m.transcript = append(m.transcript, transcriptEntry{copilot.MessageError, "❌ Usage: :set <field> <value>"})
			break
		}
		if err := setDraftField(m.draft, args[0], strings.Join(args[1:], " ")); err != nil {
			m.transcript = append(m.transcript, transcriptEntry{copilot.MessageError, "❌ " + err.Error()})
		}

	case ":save":
		if m.draft == nil {
			m.transcript = append(m.transcript, transcriptEntry{copilot.MessageError, "❌ No row open for edit."})
			break
		}
		return m, m.saveRowCmd(*m.draft)

	case ":cancel":
		m.draft = nil
		m.grid.CloseEdit()

	case ":delrow":
		i, err := rowIndex(args, len(m.grid.Rows))
		if err != nil {
			m.transcript = append(m.transcript, transcriptEntry{copilot.MessageError, "❌ " + err.Error()})
			break
		}
		return m, m.deleteRowCmd(i, m.grid.Rows[i].LineID)

	case ":receive":
		rest := strings.TrimSpace(strings.TrimPrefix(text, ":receive"))
		draft, err := parseReceivingDraft(rest)
		if err != nil {
			m.transcript = append(m.transcript, transcriptEntry{copilot.MessageError, "❌ " + err.Error()})
			break
		}
		if m.busy {
			break
		}
		m.busy = true
		m.refreshTranscript()
		return m, tea.Batch(m.confirmReceivingCmd(draft), m.spinner.Tick)

	case ":voice":
		if len(args) != 1 {
			m.transcript = append(m.transcript, transcriptEntry{copilot.MessageError, "❌ Usage: :voice <audio-file>"})
			break
		}
		if m.busy {
			break
		}
		m.busy = true
		m.refreshTranscript()
		return m, tea.Batch(m.voiceCmd(args[0]), m.spinner.Tick)

	case ":quit":
		return m, tea.Quit

	default:
		m.transcript = append(m.transcript, transcriptEntry{copilot.MessageError, "❌ Unknown command " + cmd + ". Try :help."})
	}
	m.refreshTranscript()
	return m, nil
}

const commandHelp = `Grid commands:
  :refresh              refetch the grid with the current filter
  :open N               edit row N
  :set <field> <value>  change a field of the open row
  :save                 save the open row
  :cancel               close the editor without saving
  :delrow N             delete row N
  :receive c; d; wh; ref; item; loc; qty; status
  :voice <file>         transcribe an audio clip into the input
  :quit                 exit`

func (m chatModel) dispatchTurn(text string) tea.Cmd {
	gw, disp, session, sessionID := m.gw, m.dispatcher, m.session, m.sessionID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		res, err := gw.Interpret(ctx, text, sessionID)
		if err != nil {
			return turnDoneMsg{entries: []transcriptEntry{{copilot.MessageError, "❌ Error processing command. Please try again."}}}
		}

		out := turnDoneMsg{}
		for _, effect := range disp.Handle(ctx, text, res, session) {
			switch e := effect.(type) {
			case copilot.ShowMessage:
				out.entries = append(out.entries, transcriptEntry{e.Kind, e.Text})
			case copilot.RefreshGrid:
				view := copilot.Reconcile(ctx, gw, e.Filter)
				out.grid = &view
				out.openFirst = e.OpenFirstRow
			case copilot.OpenForm:
				out.formOpen = true
			}
		}
		return out
	}
}

func (m chatModel) refreshGridCmd(f copilot.Filter) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return gridMsg{view: copilot.Reconcile(ctx, gw, f)}
	}
}

func (m chatModel) saveRowCmd(d copilot.RowDraft) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return rowSavedMsg{err: copilot.SaveRow(ctx, gw, d)}
	}
}

func (m chatModel) deleteRowCmd(index int, lineID int64) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return rowDeletedMsg{index: index, err: gw.DeleteLine(ctx, lineID)}
	}
}

func (m chatModel) confirmReceivingCmd(d copilot.ReceivingDraft) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		grnID, err := gw.ConfirmReceiving(ctx, d)
		return confirmedMsg{grnID: grnID, err: err}
	}
}

func (m chatModel) voiceCmd(path string) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		stop := make(chan struct{})
		close(stop)
		clip, err := copilot.Capture(ctx, &fileRecorder{path: path}, stop, copilot.MaxRecordingDuration)
		if err != nil {
			return voiceMsg{err: err}
		}
		text, err := gw.Transcribe(ctx, bytes.NewReader(clip), filepath.Base(path))
		return voiceMsg{text: text, err: err}
	}
}

// fileRecorder plays back a pre-recorded clip from disk in place of a
// microphone.
type fileRecorder struct {
	path string
}

func (r *fileRecorder) Start(_ context.Context) error {
	_, err := os.Stat(r.path)
	return err
}

func (r *fileRecorder) Stop() ([]byte, error) {
	return os.ReadFile(r.path)
}

func rowIndex(args []string, rows int) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one row number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > rows {
		return 0, fmt.Errorf("row number must be between 1 and %d", rows)
	}
	return n - 1, nil
}

func setDraftField(d *copilot.RowDraft, field, value string) error {
	switch strings.ToLower(field) {
	case "customer":
		d.Customer = value
	case "date", "receiving_date":
		d.ReceivingDate = value
	case "reference", "reference_no":
		d.ReferenceNo = value
	case "warehouse":
		d.Warehouse = value
	case "item", "item_code":
		d.ItemCode = value
	case "location":
		d.Location = value
	case "batch", "batch_no":
		d.BatchNo = value
	case "qty", "quantity":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("quantity must be a number")
		}
		d.Quantity = n
	case "status":
		d.Status = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

func parseReceivingDraft(s string) (copilot.ReceivingDraft, error) {
	parts := strings.Split(s, ";")
	if len(parts) != 8 {
		return copilot.ReceivingDraft{}, fmt.Errorf("expected 8 fields: customer; date; warehouse; reference; item; location; qty; status")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	qty, err := strconv.ParseInt(parts[6], 10, 64)
	if err != nil {
		return copilot.ReceivingDraft{}, fmt.Errorf("quantity must be a number")
	}
	draft := copilot.ReceivingDraft{
		Customer:      parts[0],
		ReceivingDate: parts[1],
		Warehouse:     parts[2],
		ReferenceNo:   parts[3],
		Items: []copilot.LineItemDraft{{
			ItemCode: parts[4],
			Location: parts[5],
			Quantity: qty,
			Status:   parts[7],
		}},
	}
	if err := copilot.ValidateDraft(draft); err != nil {
		return copilot.ReceivingDraft{}, err
	}
	return draft, nil
}
