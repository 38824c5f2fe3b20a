package rng

import (
	"github.com/ahmeterdemserceoglu/sloter/internal/model"
)

// Generator — генератор игрового поля на взвешенных символах
type Generator struct {
	table *WeightTable
	src   Source
}

func NewGenerator(table *WeightTable, src Source) *Generator {
	return &Generator{
		table: table,
		src:   src,
	}
}

// Draw — розыгрыш одного символа
func (g *Generator) Draw() string {
	return g.table.pick(g.src.Intn(g.table.total))
}

// GenerateReel — один барабан из rows символов
func (g *Generator) GenerateReel(rows int) []string {
	reel := make([]string, rows)
	for i := range reel {
		reel[i] = g.Draw()
	}
	return reel
}

// GenerateGrid — свежее поле reels x rows. Владение полем у вызывающего,
// после генерации поле только читается
func (g *Generator) GenerateGrid(reels, rows int) model.ReelGrid {
	grid := make(model.ReelGrid, reels)
	for r := range grid {
		grid[r] = g.GenerateReel(rows)
	}
	return grid
}
