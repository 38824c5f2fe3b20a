package env

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ahmeterdemserceoglu/sloter/internal/config"
	"github.com/ahmeterdemserceoglu/sloter/internal/engine/payline"
	"github.com/ahmeterdemserceoglu/sloter/internal/engine/rng"
)

type gameYAML struct {
	Game struct {
		Reels        int    `yaml:"reels"`
		Rows         int    `yaml:"rows"`
		Denomination int    `yaml:"denomination"`
		Wild         string `yaml:"wild"`
		Scatter      string `yaml:"scatter"`
		MinRun       int    `yaml:"min_run"`
		ScatterMin   int    `yaml:"scatter_min"`
		ScatterRate  int    `yaml:"scatter_rate"`
		JackpotMult  int    `yaml:"jackpot_multiplier"`
		MaxPayout    int    `yaml:"max_payout_multiplier"`
		MaxBet       int    `yaml:"max_bet"`
		RTPWindow    int    `yaml:"rtp_window"`
		Symbols      []struct {
			ID     string `yaml:"id"`
			Weight int    `yaml:"weight"`
		} `yaml:"symbols"`
		Paytable map[string]map[int]int `yaml:"paytable"`
		Paylines [][]int                `yaml:"paylines"`
	} `yaml:"game"`
}

type gameConfig struct {
	reels     int
	rows      int
	table     *rng.WeightTable
	payline   payline.Config
	maxBet    int
	rtpWindow int
}

// NewGameConfigFromYAML - загрузка игровой конфигурации.
// Невалидная таблица весов или линии - ошибка загрузки, а не ошибка розыгрыша
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game config: %w", err)
	}

	var raw gameYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse game config: %w", err)
	}

	g := raw.Game
	if g.Reels <= 0 || g.Rows <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", g.Reels, g.Rows)
	}

	weights := make([]rng.SymbolWeight, 0, len(g.Symbols))
	for _, s := range g.Symbols {
		weights = append(weights, rng.SymbolWeight{Symbol: s.ID, Weight: s.Weight})
	}
	table, err := rng.NewWeightTable(weights, g.Denomination)
	if err != nil {
		return nil, fmt.Errorf("symbol weight table: %w", err)
	}

	for i, line := range g.Paylines {
		if len(line) != g.Reels {
			return nil, fmt.Errorf("payline %d has %d positions, expected %d", i+1, len(line), g.Reels)
		}
		for _, row := range line {
			if row < 0 || row >= g.Rows {
				return nil, fmt.Errorf("payline %d references row %d outside of grid", i+1, row)
			}
		}
	}

	return &gameConfig{
		reels: g.Reels,
		rows:  g.Rows,
		table: table,
		payline: payline.Config{
			Wild:                g.Wild,
			Scatter:             g.Scatter,
			MinRun:              g.MinRun,
			ScatterMin:          g.ScatterMin,
			ScatterRate:         g.ScatterRate,
			JackpotMultiplier:   g.JackpotMult,
			MaxPayoutMultiplier: g.MaxPayout,
			Paytable:            g.Paytable,
			Patterns:            g.Paylines,
		},
		maxBet:    g.MaxBet,
		rtpWindow: g.RTPWindow,
	}, nil
}

func (c *gameConfig) Reels() int {
	return c.reels
}

func (c *gameConfig) Rows() int {
	return c.rows
}

func (c *gameConfig) WeightTable() *rng.WeightTable {
	return c.table
}

func (c *gameConfig) Payline() payline.Config {
	return c.payline
}

func (c *gameConfig) MaxBet() int {
	return c.maxBet
}

func (c *gameConfig) RTPWindowSize() int {
	return c.rtpWindow
}
