package cli

import (
	"fmt"
	"strconv"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/ui"
)

const titleWidth = 60

func stats(todos []model.Todo) (done, open int) {
	for _, t := range todos {
		if t.IsCompleted() {
			done++
		} else {
			open++
		}
	}
	return
}

func statusColor(s model.Status) string {
	th := ui.Current()
	switch s {
	case model.StatusCompleted:
		return th.Success
	case model.StatusInProgress:
		return th.InProgress
	default:
		return th.Pending
	}
}

func statusBox(s model.Status) string {
	th := ui.Current()
	switch s {
	case model.StatusCompleted:
		return th.BoxChecked
	case model.StatusInProgress:
		return th.BoxProgress
	default:
		return th.BoxUnchecked
	}
}

func flatLines(todos []model.Todo) []string {
	th := ui.Current()
	if len(todos) == 0 {
		return []string{ui.C(th.Muted, "no todos")}
	}
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		idx := fmt.Sprintf("%4s", "#"+t.ID.String())
		color := statusColor(t.Status)
		title := ui.Truncate(t.Title, titleWidth)
		if t.IsCompleted() {
			title = ui.C(th.Muted, title)
		}
		line := fmt.Sprintf("%s %s %s %s",
			ui.Dim(idx), ui.C(color, statusBox(t.Status)), title, ui.C(color, "["+string(t.Status)+"]"))
		if t.Priority > 0 {
			line += " " + ui.C(th.Accent, "p"+strconv.Itoa(t.Priority))
		}
		out = append(out, line)
	}
	return out
}

func groupLines(todos []model.Todo) []string {
	th := ui.Current()
	var lines []string
	for i, s := range model.Statuses {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, ui.C(th.Accent, s.Label()))
		group := model.Filter(s).Apply(todos)
		if len(group) == 0 {
			lines = append(lines, ui.C(th.Muted, "(none)"))
			continue
		}
		lines = append(lines, flatLines(group)...)
	}
	return lines
}
