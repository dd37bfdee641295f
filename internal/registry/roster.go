package registry

// Names and colors are paired by index before shuffling.
var (
	stableNames = []string{
		"Crimson Comet", "Shadow Dancer", "Blazing Nova", "Iron Hoof",
		"Golden Horizon", "Storm Whisper", "Velvet Thunder", "Silent Arrow",
		"Majestic Flame", "Lunar Mirage", "Steel Tempest", "Emerald Wind",
		"Scarlet Phantom", "Blue Inferno", "Rapid Echo", "Obsidian Sky",
		"Frozen Valor", "Wildfire Soul", "Silver Phantom", "Solar Blade",
	}

	stableColors = []string{
		"#E63946", "#2A9D8F", "#457B9D", "#F4A261", "#A8DADC",
		"#1D3557", "#F72585", "#B5179E", "#7209B7", "#3A0CA3",
		"#4CC9F0", "#FFBE0B", "#FB5607", "#FF006E", "#8338EC",
		"#3A86FF", "#06D6A0", "#EF476F", "#118AB2", "#073B4C",
	}
)

// PoolSize is the number of competitors Generate creates.
var PoolSize = len(stableNames)
