package render

import (
	"strings"
	"testing"

	"github.com/Nicolas0016/impostor/internal/game"
)

func TestTurnOrderMarksCurrentPlayer(t *testing.T) {
	html := TurnOrder([]string{"Ana", "Luis", "Pedro"}, "Luis")
	if !strings.Contains(html, "turn-current") {
		t.Error("current player not marked")
	}
	if strings.Count(html, "turn-current") != 1 {
		t.Error("exactly one player should be marked current")
	}
	for _, name := range []string{"Ana", "Luis", "Pedro"} {
		if !strings.Contains(html, name) {
			t.Errorf("missing player %s", name)
		}
	}
}

func TestTurnOrderEscapesNames(t *testing.T) {
	html := TurnOrder([]string{"<script>alert(1)</script>"}, "")
	if strings.Contains(html, "<script>") {
		t.Error("player name not escaped")
	}
}

func TestVoteButtonsTargetEliminateEndpoint(t *testing.T) {
	html := VoteButtons("ABC123", []string{"Ana", "Luis"})
	if !strings.Contains(html, "/session/ABC123/eliminate") {
		t.Error("missing eliminate endpoint")
	}
	if strings.Count(html, "<form") != 2 {
		t.Error("expected one form per player")
	}
}

func TestEliminationNoticeShowsRole(t *testing.T) {
	impostor := EliminationNotice(game.EliminateResult{
		Eliminated: "Ana", Found: true, WasImpostor: true,
		RemainingImpostors: []string{"Pedro"},
		RemainingPlayers:   []string{"Luis", "Pedro", "Sofía"},
	})
	if !strings.Contains(impostor, "impostor") {
		t.Error("impostor elimination not announced")
	}

	crew := EliminationNotice(game.EliminateResult{
		Eliminated: "Luis", Found: true, WasImpostor: false,
		RemainingImpostors: []string{"Pedro"},
		RemainingPlayers:   []string{"Ana", "Pedro", "Sofía"},
	})
	if !strings.Contains(crew, "crew") {
		t.Error("crew elimination not announced")
	}
}

func TestEliminationNoticeCountsFromNameLists(t *testing.T) {
	html := EliminationNotice(game.EliminateResult{
		Eliminated: "Ana", Found: true, WasImpostor: false,
		RemainingImpostors: []string{"Pedro", "Luis"},
		RemainingPlayers:   []string{"Pedro", "Luis", "Sofía", "Juan", "María"},
	})
	if !strings.Contains(html, "2 impostor(s) and 3 crew remain") {
		t.Errorf("remaining counts wrong: %s", html)
	}
}

func TestHistoryTableHandlesEmptyHistory(t *testing.T) {
	if html := HistoryTable(nil); !strings.Contains(html, "No rounds") {
		t.Errorf("empty history message missing: %s", html)
	}
}

func TestHistoryTableListsRounds(t *testing.T) {
	html := HistoryTable([]game.RoundRecord{
		{Round: 1, Impostors: []string{"Ana"}, CrewWord: "playa", ImpostorWord: "IMPOSTOR"},
		{Round: 2, Impostors: []string{"Luis", "Pedro"}, CrewWord: "gato", ImpostorWord: "perro"},
	})
	for _, want := range []string{"playa", "gato", "perro", "Luis, Pedro"} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q in history table", want)
		}
	}
}

func TestWordCardShowsHelpOnlyWhenPresent(t *testing.T) {
	with := WordCard(game.PlayerInfo{Player: "Ana", Word: "perro", Help: "Blend in."})
	if !strings.Contains(with, "word-help") {
		t.Error("help text missing")
	}
	without := WordCard(game.PlayerInfo{Player: "Ana", Word: "gato"})
	if strings.Contains(without, "word-help") {
		t.Error("help shown without related word")
	}
}

func TestRedirectSnippetPointsToTarget(t *testing.T) {
	html := RedirectSnippet("ABC123", "/session/ABC123/results")
	if !strings.Contains(html, "/session/ABC123/redirect?to=/session/ABC123/results") {
		t.Errorf("unexpected snippet: %s", html)
	}
}
