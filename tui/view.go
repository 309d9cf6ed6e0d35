package tui

import (
	"fmt"
	"strings"

	"github.com/nomis52/timetrack/timer"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("timetrack"))
	b.WriteString("\n\n")

	activities := m.tracker.Activities()
	if len(activities) == 0 {
		b.WriteString(idleStyle.Render("No activities yet. Press 'a' to add one."))
		b.WriteString("\n")
	}

	for i, activity := range activities {
		b.WriteString(m.renderRow(i, activity))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.adding {
		b.WriteString(fmt.Sprintf("New activity: %s█\n", m.input))
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	if !m.saveTime.IsZero() {
		b.WriteString(footerStyle.Render(fmt.Sprintf("saved %s", m.saveTime.Format("15:04:05"))))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render(
		"enter/s start • x stop • tab select • a add • d delete • w save • q quit",
	))
	return b.String()
}

func (m Model) renderRow(i int, activity *timer.Activity) string {
	cursor := "  "
	if i == m.cursor {
		cursor = cursorStyle.Render("> ")
	}

	marker := " "
	if selected, ok := m.tracker.SelectedActivity(); ok && selected == activity.Name {
		marker = selectedStyle.Render("*")
	}

	total := activity.TotalTime()
	label := activity.Name
	status := idleStyle.Render(activity.TotalTimeString())

	if current, ok := m.tracker.CurrentActivity(); ok && current == activity.Name {
		if elapsed, ok := m.tracker.LiveElapsed(); ok {
			total += elapsed
		}
		label = runningStyle.Render(label)
		status = runningStyle.Render(fmt.Sprintf("%s ▶", timer.FormatHMS(total)))
	}

	week := timer.FormatHM(activity.HoursLastWeek(m.tracker.Now()))

	return fmt.Sprintf("%s%s %-20s %12s  week %s", cursor, marker, label, status, week)
}
