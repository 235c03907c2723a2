package models

import "errors"

// Application-wide standard errors
var (
	// Player & Registration Errors
	ErrNotRegistered       = errors.New("player is not registered")
	ErrPlayerAlreadyExists = errors.New("player is already registered")
	ErrPlayerDead          = errors.New("player has no HP left")

	// Encounter Guard Errors
	ErrNotInCombat      = errors.New("no active encounter")
	ErrAlreadyInCombat  = errors.New("player is already in an encounter")
	ErrAlreadyInDungeon = errors.New("player is already inside a dungeon")
	ErrAlreadyInPvp     = errors.New("player is already in a pvp duel")
	ErrNotInDungeon     = errors.New("player is not inside a dungeon")

	// Combat Command Errors
	ErrInsufficientMana    = errors.New("not enough MP for this skill")
	ErrUnknownSkill        = errors.New("skill is unknown or not learned")
	ErrUnknownItem         = errors.New("item not found in inventory")
	ErrItemNotUsable       = errors.New("item cannot be used in battle")
	ErrCannotFlee          = errors.New("cannot flee from a boss encounter")
	ErrUltimateAlreadyUsed = errors.New("ultimate skill already used this encounter")

	// PVP & Targeting Errors
	ErrInvalidTarget      = errors.New("invalid target")
	ErrTargetBusy         = errors.New("target player is busy")
	ErrChallengeNotFound  = errors.New("no pending pvp challenge")
	ErrChallengeExists    = errors.New("a pvp challenge is already pending")

	// World Boss Errors
	ErrNoWorldBoss     = errors.New("no world boss is active")
	ErrWorldBossActive = errors.New("a world boss is already active")

	// Progression Gate Errors
	ErrLoanDelinquent = errors.New("outstanding loan blocks this action")
	ErrLevelTooLow    = errors.New("player level is too low for this region")
	ErrOnCooldown     = errors.New("command is on cooldown")
	ErrInventoryFull  = errors.New("inventory is full")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
)
