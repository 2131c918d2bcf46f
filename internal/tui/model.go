package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/config"
	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/engine"
	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/ui"
)

type section int

const (
	sectionXP section = iota
	sectionDebt
	sectionStats
	sectionQuests
	sectionLog
	sectionCount
)

var sectionNames = [sectionCount]string{"XP", "Debt", "Stats", "Quests", "Activity"}

type hudModel struct {
	ctx context.Context
	svc *engine.Service
	cfg *config.Config

	width  int
	height int

	section  section
	selected [sectionCount]int

	log []string

	lastLog string
	loading bool
}

type loadedMsg struct {
	log []string
	err error
}

type appliedMsg struct {
	desc string
	err  error
}

func newHUDModel(ctx context.Context, svc *engine.Service, cfg *config.Config) hudModel {
	return hudModel{
		ctx:     ctx,
		svc:     svc,
		cfg:     cfg,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m hudModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m hudModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		// A load failure is a warning: the service falls back to defaults.
		warn := m.svc.Load(m.ctx)
		if _, err := m.svc.EnsureTodaysQuests(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		if warn != nil {
			return loadedMsg{err: warn}
		}
		entries, err := m.svc.History(m.ctx, 8)
		if err != nil {
			// History is cosmetic. Show the board anyway.
			return loadedMsg{}
		}
		lines := make([]string, 0, len(entries))
		for _, e := range entries {
			lines = append(lines, engine.DescribeEntry(e))
		}
		return loadedMsg{log: lines}
	}
}

func (m hudModel) adjustXPCmd(category string, dir engine.Direction) tea.Cmd {
	return func() tea.Msg {
		amount := m.cfg.Rate(category).Resolve(0)
		res, err := m.svc.AdjustXP(m.ctx, category, dir, amount)
		if err != nil {
			return appliedMsg{err: err}
		}
		desc := fmt.Sprintf("%s %s %.1f XP", dir, category, res.Applied)
		if res.DebtPaid > 0 {
			desc += fmt.Sprintf(" (%.1f to debt)", res.DebtPaid)
		}
		if res.LevelUp {
			desc += " " + ui.BadgeLevelUp
		}
		return appliedMsg{desc: desc, err: res.SyncErr}
	}
}

func (m hudModel) adjustDebtCmd(category string, dir engine.Direction) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.AdjustDebt(m.ctx, category, dir)
		if err != nil {
			return appliedMsg{err: err}
		}
		return appliedMsg{
			desc: fmt.Sprintf("%s debt %s %.1f", dir, category, res.Applied),
			err:  res.SyncErr,
		}
	}
}

func (m hudModel) adjustStatCmd(group, code string, delta int) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.AdjustStat(m.ctx, group, code, delta)
		if err != nil {
			return appliedMsg{err: err}
		}
		return appliedMsg{
			desc: fmt.Sprintf("%s/%s → %d", group, code, res.Value),
			err:  res.SyncErr,
		}
	}
}

func (m hudModel) questDoneCmd(slot int) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteQuest(m.ctx, slot, m.cfg.Rate(engine.QuestXPCategory(slot)).Resolve(0))
		if err != nil {
			return appliedMsg{err: err}
		}
		desc := fmt.Sprintf("Quest done: %s (+%.1f XP)", res.Text, res.Bonus)
		if res.LevelUp {
			desc += " " + ui.BadgeLevelUp
		}
		return appliedMsg{desc: desc, err: res.SyncErr}
	}
}

func (m hudModel) rerollCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.RerollQuests(m.ctx)
		if err != nil {
			return appliedMsg{err: err}
		}
		return appliedMsg{desc: "Rerolled quests for " + res.Quests.Date, err: res.SyncErr}
	}
}

func (m hudModel) refreshLogCmd() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.svc.History(m.ctx, 8)
		if err != nil {
			return loadedMsg{}
		}
		lines := make([]string, 0, len(entries))
		for _, e := range entries {
			lines = append(lines, engine.DescribeEntry(e))
		}
		return loadedMsg{log: lines}
	}
}

func (m hudModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.lastLog = "Load: " + msg.err.Error()
			return m, nil
		}
		if msg.log != nil {
			m.log = msg.log
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case appliedMsg:
		if msg.err != nil && msg.desc == "" {
			m.lastLog = "Failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.desc
		if msg.err != nil {
			m.lastLog += "  " + ui.Warn.Render("(sync failed)")
		}
		return m, m.refreshLogCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m hudModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case "tab", "l", "right":
		m.section = (m.section + 1) % sectionCount
		return m, nil
	case "shift+tab", "h", "left":
		m.section = (m.section + sectionCount - 1) % sectionCount
		return m, nil
	case "up", "k":
		if m.selected[m.section] > 0 {
			m.selected[m.section]--
		}
		return m, nil
	case "down", "j":
		if m.selected[m.section] < m.sectionLen()-1 {
			m.selected[m.section]++
		}
		return m, nil
	case "+", "=":
		return m.adjustSelected(engine.DirectionAdd, 1)
	case "-", "_":
		return m.adjustSelected(engine.DirectionSubtract, -1)
	case "c", " ", "enter":
		if m.section == sectionQuests {
			return m, m.questDoneCmd(m.selected[sectionQuests])
		}
		return m, nil
	case "R":
		if m.section == sectionQuests {
			return m, m.rerollCmd()
		}
		return m, nil
	}
	return m, nil
}

func (m hudModel) adjustSelected(dir engine.Direction, delta int) (tea.Model, tea.Cmd) {
	switch m.section {
	case sectionXP:
		cat := engine.XPCategories[m.selected[sectionXP]]
		return m, m.adjustXPCmd(cat, dir)
	case sectionDebt:
		cat := engine.DebtCategories[m.selected[sectionDebt]]
		return m, m.adjustDebtCmd(cat, dir)
	case sectionStats:
		group, code, ok := statAt(m.selected[sectionStats])
		if !ok {
			return m, nil
		}
		return m, m.adjustStatCmd(group, code, delta)
	}
	return m, nil
}

func (m hudModel) sectionLen() int {
	switch m.section {
	case sectionXP:
		return len(engine.XPCategories)
	case sectionDebt:
		return len(engine.DebtCategories)
	case sectionStats:
		return statRowCount()
	case sectionQuests:
		if q := m.svc.State().Quests; q != nil {
			return len(q.Slots)
		}
		return 0
	case sectionLog:
		return len(m.log)
	}
	return 0
}

type statRow struct {
	group string
	code  string
}

func statRows() []statRow {
	var rows []statRow
	for _, g := range engine.StatGroups {
		for _, c := range engine.StatCodes(g) {
			rows = append(rows, statRow{group: g, code: c})
		}
	}
	return rows
}

func statRowCount() int { return len(statRows()) }

func statAt(i int) (string, string, bool) {
	rows := statRows()
	if i < 0 || i >= len(rows) {
		return "", "", false
	}
	return rows[i].group, rows[i].code, true
}

func (m hudModel) View() string {
	if m.loading {
		return "Loading…\n"
	}

	header := m.renderHeader()
	body := m.renderSection()
	footer := m.renderFooter()
	return header + "\n\n" + body + "\n" + footer
}

func (m hudModel) renderHeader() string {
	st := m.svc.State()
	d := engine.Derive(st.XP, st.Debt)
	barW := 30
	if m.width > 0 && m.width < 80 {
		barW = 16
	}

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconHUD, fmt.Sprintf("Player HUD | Level %d | %s", d.Level, d.Title)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s XP    %s %.1f / %.0f\n", ui.IconXP, ui.Bar(d.XPPercent, barW), d.XPInLevel, d.XPRequired))
	b.WriteString(fmt.Sprintf("%s Title %s next at level %d\n", ui.IconTrophy, ui.Bar(d.TitlePercent, barW), d.TitleNext))
	b.WriteString(fmt.Sprintf("%s Debt  %s %.1f", ui.IconDebt, ui.DebtBar(d.DebtPercent, barW), d.TotalDebt))

	var tabs []string
	for i, name := range sectionNames {
		if section(i) == m.section {
			tabs = append(tabs, ui.SelectedRow.Render("["+name+"]"))
		} else {
			tabs = append(tabs, ui.Muted.Render(" "+name+" "))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(strings.Join(tabs, " "))
	return b.String()
}

func (m hudModel) renderSection() string {
	switch m.section {
	case sectionXP:
		return m.renderXP()
	case sectionDebt:
		return m.renderDebt()
	case sectionStats:
		return m.renderStats()
	case sectionQuests:
		return m.renderQuests()
	case sectionLog:
		return m.renderLog()
	}
	return ""
}

func (m hudModel) renderXP() string {
	st := m.svc.State()
	var out []string
	for i, cat := range engine.XPCategories {
		cursor := "  "
		if i == m.selected[sectionXP] {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-32s %7.1f", cursor, cat, st.XP[cat])
		if i == m.selected[sectionXP] {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m hudModel) renderDebt() string {
	st := m.svc.State()
	var out []string
	for i, cat := range engine.DebtCategories {
		cursor := "  "
		if i == m.selected[sectionDebt] {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-32s %7.1f  (+%.1f)", cursor, cat, st.Debt[cat], engine.DebtPenalty(cat))
		if i == m.selected[sectionDebt] {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m hudModel) renderStats() string {
	st := m.svc.State()
	rows := statRows()
	var out []string
	lastGroup := ""
	for i, row := range rows {
		if row.group != lastGroup {
			if lastGroup != "" {
				out = append(out, "")
			}
			out = append(out, ui.H2.Render(row.group))
			lastGroup = row.group
		}
		cursor := "  "
		if i == m.selected[sectionStats] {
			cursor = "> "
		}
		val := st.Stats[row.group][row.code]
		line := fmt.Sprintf("%s%-4s %3d %s", cursor, row.code, val, ui.Bar(float64(val), 14))
		if i == m.selected[sectionStats] {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m hudModel) renderQuests() string {
	st := m.svc.State()
	if st.Quests == nil || len(st.Quests.Slots) == 0 {
		return "(no quests rolled)"
	}
	var out []string
	out = append(out, ui.Muted.Render("Daily quests for "+st.Quests.Date))
	for i, slot := range st.Quests.Slots {
		cursor := "  "
		if i == m.selected[sectionQuests] {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s %s", cursor, ui.QuestIcon(slot.Done), slot.Text)
		if i == m.selected[sectionQuests] {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	out = append(out, "", ui.Muted.Render("space/c: complete  R: reroll"))
	return strings.Join(out, "\n")
}

func (m hudModel) renderLog() string {
	if len(m.log) == 0 {
		return "(no activity yet)"
	}
	var out []string
	for _, line := range m.log {
		out = append(out, "  "+line)
	}
	return strings.Join(out, "\n")
}

func (m hudModel) renderFooter() string {
	keys := "tab: section  j/k: move  +/-: adjust  r: refresh  q: quit"
	return "\n" + m.lastLog + "\n" + ui.Muted.Render(keys)
}
