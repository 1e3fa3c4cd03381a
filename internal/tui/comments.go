package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateComments(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeForm
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.repos)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Edit):
		repo, ok := m.selectedRepo()
		if !ok {
			return m, nil
		}
		m.editedRepo = repo
		m.editor.SetValue(m.deps.Settings.Comments(m.result.Username)[repo])
		m.editor.CursorEnd()
		m.mode = modeEditComment
		return m, m.editor.Focus()

	case key.Matches(msg, m.keys.Delete):
		repo, ok := m.selectedRepo()
		if !ok {
			return m, nil
		}
		data := map[string]interface{}{"Repo": repo}
		if !m.deps.Settings.DeleteComment(m.result.Username, repo) {
			m.setError(m.msg("warnings.comment_not_found", data))
			return m, nil
		}
		m.persist()
		m.rerender()
		m.setStatus(m.msg("status_messages.comment_deleted", data))
	}

	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.editor.Blur()
		m.mode = modeComments
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		repo := m.editedRepo
		text := strings.TrimSpace(m.editor.Value())
		m.deps.Settings.SetComment(m.result.Username, repo, text)
		m.persist()
		m.rerender()

		data := map[string]interface{}{"Repo": repo}
		if text == "" {
			m.setStatus(m.msg("status_messages.comment_deleted", data))
		} else {
			m.setStatus(m.msg("status_messages.comment_saved", data))
		}
		m.editor.Blur()
		m.mode = modeComments
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) selectedRepo() (string, bool) {
	if m.result == nil || m.cursor < 0 || m.cursor >= len(m.repos) {
		return "", false
	}
	return m.repos[m.cursor].NameWithOwner, true
}

func (m Model) commentsView() string {
	username := ""
	if m.result != nil {
		username = m.result.Username
	}
	comments := m.deps.Settings.Comments(username)

	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.msg("comments_dialog.title", map[string]interface{}{"Username": username})))
	b.WriteString("\n")
	b.WriteString(m.styles.status.Render(m.msg("comments_dialog.instructions", nil)))
	b.WriteString("\n\n")

	if len(m.repos) == 0 {
		b.WriteString(m.styles.status.Render(m.msg("comments_dialog.no_comments", nil)) + "\n")
	}
	for i, repo := range m.repos {
		line := "  " + repo.NameWithOwner
		if i == m.cursor {
			line = m.styles.selected.Render("> " + repo.NameWithOwner)
		}
		if comment := comments[repo.NameWithOwner]; comment != "" {
			line += "  " + m.styles.comment.Render(comment)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if m.mode == modeEditComment {
		b.WriteString(m.msg("comments_dialog.comment_for_repo", map[string]interface{}{"Repo": m.editedRepo}))
		b.WriteString("\n")
		b.WriteString(m.editor.View())
		b.WriteString("\n")
		b.WriteString(m.styles.help.Render(m.msg("tui.edit_keys", nil)))
	} else {
		if m.status != "" {
			if m.statusErr {
				b.WriteString(m.styles.errorMsg.Render(m.status))
			} else {
				b.WriteString(m.styles.status.Render(m.status))
			}
			b.WriteString("\n")
		}
		b.WriteString(m.styles.help.Render(m.msg("comments_dialog.keys", nil)))
	}

	return b.String()
}
