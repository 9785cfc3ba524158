package styles

// Markers used in list rows. Plain unicode so they render without a patched font.
var (
	IconChecked   = "[x]"
	IconUnchecked = "[ ]"
	IconCursor    = "›"
	IconDue       = "⏱"
	IconBarFull   = "█"
	IconBarEmpty  = "░"
)
