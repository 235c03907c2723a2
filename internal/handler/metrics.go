package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rpg_registrations_total",
		Help: "Total number of successfully registered players.",
	})

	pvpDuelsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rpg_pvp_duels_total",
		Help: "Total number of settled PVP duels.",
	})

	worldBossSpawnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rpg_world_boss_spawns_total",
		Help: "Total number of spawned world bosses.",
	})

	encounterOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpg_encounter_outcomes_total",
			Help: "Total number of combat command outcomes by kind.",
		},
		[]string{"kind"},
	)
)
