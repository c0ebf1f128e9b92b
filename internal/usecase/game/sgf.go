package game

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gogame/internal/domain/game"
	"gogame/internal/domain/sgf"
	"gogame/internal/engine"
	errs "gogame/internal/errors"
	"gogame/internal/statuses"
)

// GetSGF returns the game record with every variation, served from the
// cache when the tree has not changed since the last export.
func (g *GameUseCase) GetSGF(ctx context.Context, gameID string) (string, error) {
	cached, err := g.store.LoadSGFFromRedis(ctx, sgfKey(gameID))
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, errs.ErrCacheMiss) {
		g.log.Warnf("failed to load cached sgf of game %s: %v", gameID, err)
	}

	play, err := g.store.GetGameById(ctx, gameID)
	if err != nil {
		return "", err
	}
	tree, err := engine.Deserialize(play.Moves)
	if err != nil {
		return "", fmt.Errorf("game %s: %w", gameID, err)
	}

	record := BuildSGF(play, tree)
	sgfString := SerializeSGF(&record)
	if err = g.store.SaveSGFToRedis(ctx, sgfKey(gameID), sgfString); err != nil {
		g.log.Warnf("failed to cache sgf of game %s: %v", gameID, err)
	}
	return sgfString, nil
}

func BuildSGF(play game.Game, tree *engine.Tree) sgf.SGF {
	props := map[string][]string{
		"FF": {"4"},
		"GM": {"1"},
		"SZ": {strconv.Itoa(play.Size)},
		"PB": {sgf.Escape(play.BlackPlayerName)},
		"PW": {sgf.Escape(play.WhitePlayerName)},
		"DT": {play.CreatedAt.Format("2006-01-02")},
		"RE": {sgfResult(play)},
		"RU": {"Chinese"},
	}
	if play.Name != "" {
		props["GN"] = []string{sgf.Escape(play.Name)}
	}
	if stones, err := engine.HandicapStones(play.Size, play.Handicap); err == nil && len(stones) > 0 {
		props["HA"] = []string{strconv.Itoa(play.Handicap)}
		for _, s := range stones {
			props["AB"] = append(props["AB"], sgf.Coord(s.X, s.Y))
		}
	}

	root := buildGameTree(tree.Root())
	root.Nodes = append([]sgf.Node{{Properties: props}}, root.Nodes...)
	return sgf.SGF{Root: root}
}

// buildGameTree follows node down while there is a single continuation and
// opens one variation per child at the first fork.
func buildGameTree(node *engine.Node) *sgf.GameTree {
	tree := &sgf.GameTree{}
	for {
		if node.Move != nil {
			tree.Nodes = append(tree.Nodes, moveNode(node.Move))
		}
		if len(node.Children) != 1 {
			break
		}
		node = node.Children[0]
	}
	for _, child := range node.Children {
		tree.Children = append(tree.Children, buildGameTree(child))
	}
	return tree
}

func moveNode(move game.Move) sgf.Node {
	key := "B"
	if move.Player() == game.White {
		key = "W"
	}

	switch mv := move.(type) {
	case game.Stone:
		return sgf.Node{Properties: map[string][]string{key: {sgf.Coord(mv.X, mv.Y)}}}
	case game.Pass:
		return sgf.Node{Properties: map[string][]string{key: {""}}}
	case game.Resign:
		return sgf.Node{Properties: map[string][]string{"C": {move.Player().String() + " resigns"}}}
	}
	return sgf.Node{Properties: map[string][]string{}}
}

func sgfResult(play game.Game) string {
	if play.Status != statuses.StatusFinished {
		return ""
	}
	switch play.Result {
	case statuses.ResultBlackWin:
		if strings.HasPrefix(play.ResultExpanded, "B+") {
			return play.ResultExpanded
		}
		return "B+R"
	case statuses.ResultWhiteWin:
		if strings.HasPrefix(play.ResultExpanded, "W+") {
			return play.ResultExpanded
		}
		return "W+R"
	}
	return "0"
}

func SerializeSGF(s *sgf.SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	serializeGameTree(&builder, s.Root)
	builder.WriteString(")")
	return builder.String()
}

// фиксированный порядок свойств SGF, остальные идут по алфавиту
var orderedKeys = []string{"FF", "GM", "SZ", "HA", "PB", "PW", "GN", "DT", "RE", "RU", "AB", "C", "B", "W"}

func serializeGameTree(builder *strings.Builder, tree *sgf.GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")

		used := make(map[string]bool)
		for _, key := range orderedKeys {
			if values, ok := node.Properties[key]; ok {
				used[key] = true
				writeProperty(builder, key, values)
			}
		}

		rest := make([]string, 0)
		for key := range node.Properties {
			if !used[key] {
				rest = append(rest, key)
			}
		}
		slices.Sort(rest)
		for _, key := range rest {
			writeProperty(builder, key, node.Properties[key])
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}

func writeProperty(builder *strings.Builder, key string, values []string) {
	builder.WriteString(key)
	for _, v := range values {
		builder.WriteString("[" + v + "]")
	}
}
