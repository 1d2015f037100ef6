package render

import (
	htmlpkg "html"
	"strconv"
	"strings"

	"github.com/Nicolas0016/impostor/internal/game"
)

// TurnOrder generates HTML for the turn order list, marking the current
// player.
func TurnOrder(order []string, current string) string {
	var b strings.Builder
	b.WriteString(`<h2>Turn order</h2><ol class="turn-order">`)
	for _, name := range order {
		escaped := htmlpkg.EscapeString(name)
		if name == current {
			b.WriteString(`<li class="turn-item turn-current"><span class="player-name">`)
			b.WriteString(escaped)
			b.WriteString(`</span> <span class="badge-pill badge-turn">speaking</span></li>`)
		} else {
			b.WriteString(`<li class="turn-item"><span class="player-name">`)
			b.WriteString(escaped)
			b.WriteString(`</span></li>`)
		}
	}
	b.WriteString(`</ol>`)
	return b.String()
}

// VoteButtons generates HTML for the elimination vote buttons
func VoteButtons(code string, players []string) string {
	var b strings.Builder
	b.WriteString(`<div class="vote-grid">`)
	for _, name := range players {
		escaped := htmlpkg.EscapeString(name)
		b.WriteString(`<form hx-post="/session/`)
		b.WriteString(code)
		b.WriteString(`/eliminate"><input type="hidden" name="player" value="`)
		b.WriteString(escaped)
		b.WriteString(`"><button type="submit" class="btn btn-vote">`)
		b.WriteString(escaped)
		b.WriteString(`</button></form>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// RoundBanner generates HTML for the round header with its message
func RoundBanner(info game.RoundInfo) string {
	var b strings.Builder
	b.WriteString(`<div class="round-banner"><h2>Round `)
	b.WriteString(strconv.Itoa(info.Round))
	b.WriteString(`</h2><p class="round-message">`)
	b.WriteString(htmlpkg.EscapeString(info.Message))
	b.WriteString(`</p></div>`)
	return b.String()
}

// EliminationNotice generates HTML announcing an elimination result
func EliminationNotice(result game.EliminateResult) string {
	var b strings.Builder
	b.WriteString(`<div class="card elimination-card"><p class="elimination-name">`)
	b.WriteString(htmlpkg.EscapeString(result.Eliminated))
	b.WriteString(` was eliminated</p>`)
	if result.WasImpostor {
		b.WriteString(`<p class="elimination-role role-impostor">They were an impostor!</p>`)
	} else {
		b.WriteString(`<p class="elimination-role role-crew">They were crew.</p>`)
	}
	impostors := len(result.RemainingImpostors)
	crew := len(result.RemainingPlayers) - impostors
	b.WriteString(`<p class="text-muted">`)
	b.WriteString(strconv.Itoa(impostors))
	b.WriteString(` impostor(s) and `)
	b.WriteString(strconv.Itoa(crew))
	b.WriteString(` crew remain</p></div>`)
	return b.String()
}

// HistoryTable generates HTML for the per-round history
func HistoryTable(history []game.RoundRecord) string {
	if len(history) == 0 {
		return `<p class="text-muted">No rounds played yet.</p>`
	}
	var b strings.Builder
	b.WriteString(`<h2>Rounds</h2><table class="history-table"><thead><tr><th>Round</th><th>Word</th><th>Impostor word</th><th>Impostors</th></tr></thead><tbody>`)
	for _, rec := range history {
		b.WriteString(`<tr><td>`)
		b.WriteString(strconv.Itoa(rec.Round))
		b.WriteString(`</td><td>`)
		b.WriteString(htmlpkg.EscapeString(rec.CrewWord))
		b.WriteString(`</td><td>`)
		b.WriteString(htmlpkg.EscapeString(rec.ImpostorWord))
		b.WriteString(`</td><td>`)
		b.WriteString(htmlpkg.EscapeString(strings.Join(rec.Impostors, ", ")))
		b.WriteString(`</td></tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// WordCard generates HTML for the pass-the-phone word reveal
func WordCard(info game.PlayerInfo) string {
	var b strings.Builder
	b.WriteString(`<div class="card word-card"><p class="word-player">`)
	b.WriteString(htmlpkg.EscapeString(info.Player))
	b.WriteString(`</p><p class="word-secret">`)
	b.WriteString(htmlpkg.EscapeString(info.Word))
	b.WriteString(`</p>`)
	if info.Help != "" {
		b.WriteString(`<p class="word-help">`)
		b.WriteString(htmlpkg.EscapeString(info.Help))
		b.WriteString(`</p>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// RedirectSnippet returns an HTMX snippet that triggers a client-side redirect
func RedirectSnippet(code, to string) string {
	var b strings.Builder
	b.WriteString(`<div hx-get="/session/`)
	b.WriteString(code)
	b.WriteString(`/redirect?to=`)
	b.WriteString(to)
	b.WriteString(`" hx-trigger="load" hx-swap="none"></div>`)
	return b.String()
}
