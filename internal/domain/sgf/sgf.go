package sgf

import "strings"

// GameTree представляет одно дерево в SGF (узел + варианты)
type GameTree struct {
	Nodes    []Node      // Последовательность узлов (основная линия)
	Children []*GameTree // Варианты (вариативные линии)
}

// Node представляет один узел SGF (набор свойств, таких как B[pd], W[dd], C[...])
type Node struct {
	Properties map[string][]string // Свойства могут повторяться (например, AB[aa][bb])
}

// SGF представляет корневой элемент SGF-файла
type SGF struct {
	Root *GameTree
}

// Coord кодирует пересечение (x, y) как две буквы, "aa" — левый верхний угол.
func Coord(x, y int) string {
	return string([]byte{byte('a' + x), byte('a' + y)})
}

var escaper = strings.NewReplacer(`\`, `\\`, `]`, `\]`)

// Escape экранирует значение свойства.
func Escape(value string) string {
	return escaper.Replace(value)
}
