package termhack

// wordLists maps a word length to its candidate passwords.
// All words are uppercase ASCII and unique within their list.
var wordLists = map[int][]string{
	4: {
		"BARK", "BEAM", "BOLT", "CAGE", "CASK", "CODE", "CORE", "DATA",
		"DUST", "FIRE", "GATE", "GRID", "HULL", "IRON", "JOLT", "KEYS",
		"LOCK", "MASK", "NUKE", "PIPE", "RAID", "RUST", "SAFE", "SCAN",
		"TANK", "VALE", "VOID", "WARD", "WIRE", "ZONE",
	},
	5: {
		"ALARM", "ARMOR", "BLAST", "CACHE", "CHAIN", "CRATE", "DEPOT", "DRONE",
		"EMBER", "FLASK", "GUARD", "HATCH", "LASER", "LEVER", "MUTED", "NERVE",
		"ORBIT", "PANEL", "PROBE", "RADAR", "RELAY", "SCRAP", "SHAFT", "STEEL",
		"TOXIC", "VAULT", "WASTE", "ZEBRA",
	},
	6: {
		"ACCESS", "BUNKER", "CIPHER", "DECODE", "ENERGY", "FILTER", "GLITCH", "HANGAR",
		"KERNEL", "LEGION", "MATRIX", "MODULE", "OUTPUT", "PLASMA", "RECALL", "REPAIR",
		"SECTOR", "SIGNAL", "SYSTEM", "TARGET", "TUNNEL", "VECTOR", "WANDER", "ZEALOT",
	},
	7: {
		"ARMORED", "BATTERY", "CAPSULE", "CONSOLE", "CONTROL", "DECRYPT", "DEFENSE", "ELEMENT",
		"FISSION", "FORTUNE", "GRENADE", "HISTORY", "LOCKOUT", "MACHINE", "MISSION", "NETWORK",
		"OVERRUN", "PROGRAM", "QUARTER", "REACTOR", "SHELTER", "SUPPORT", "TRAITOR", "WARFARE",
	},
	8: {
		"ABSOLUTE", "BULKHEAD", "CHEMICAL", "COMMANDS", "DATABASE", "DETONATE", "ELECTRON", "FACILITY",
		"FIREWALL", "GENERATE", "HARDWARE", "INTRUDER", "MAINTAIN", "MONOLITH", "OVERRIDE", "PASSWORD",
		"PROTOCOL", "RESEARCH", "SECURITY", "SENTINEL", "SOFTWARE", "TERMINAL", "UPLOADED", "WASTEFUL",
	},
	9: {
		"ADVANCING", "BLUEPRINT", "BROTHERLY", "CALIBRATE", "CHRONICLE", "COMMANDER", "CONDUCTOR", "DANGEROUS",
		"DIRECTIVE", "EMERGENCY", "EXPLOSIVE", "GENERATOR", "HIBERNATE", "INSTITUTE", "INVENTORY", "MECHANISM",
		"OPERATION", "OVERSEERS", "PROCESSOR", "RADIATION", "SCAVENGER", "SUBSTANCE", "TRANSMITS", "WASTELAND",
	},
	10: {
		"ANNIHILATE", "AUTOMATION", "BIOHAZARDS", "CALIBRATED", "CONTAINERS", "DEPLOYMENT", "ELECTRONIC", "ENCRYPTION",
		"EXPERIMENT", "GOVERNMENT", "INDUSTRIAL", "INTERCEPTS", "LIEUTENANT", "MAINFRAMES", "MONITORING", "NEUTRALIZE",
		"OPERATIONS", "PROTECTION", "QUARANTINE", "RECIPROCAL", "SETTLEMENT", "SUPPRESSOR", "TECHNOLOGY", "VENTILATOR",
	},
	11: {
		"ATMOSPHERIC", "BATTLEFIELD", "COMMUNICATE", "CONSTRUCTED", "CONTAMINATE", "DEFENSELESS", "DESTRUCTION", "ENGINEERING",
		"EXTERMINATE", "FABRICATION", "GENERATIONS", "HEADQUARTER", "INFORMATION", "INSTRUCTION", "LIBERATIONS", "MAINTENANCE",
		"OBSERVATORY", "POPULATIONS", "PROGRAMMING", "RECONSTRUCT", "SUPERMUTANT", "TRANSMITTER", "UNDERGROUND", "WASTELANDER",
	},
}

// wordsOfLength returns the list for n, or nil when none exists.
func wordsOfLength(n int) []string {
	return wordLists[n]
}
