package audiogram

// SymbolKind identifies the audiometric notation symbol drawn for a point.
type SymbolKind string

const (
	SymbolCircle       SymbolKind = "circle" // right ear, air conduction
	SymbolCross        SymbolKind = "cross"  // left ear, air conduction
	SymbolLeftBracket  SymbolKind = "lt"     // right ear, bone conduction ("<")
	SymbolRightBracket SymbolKind = "gt"     // left ear, bone conduction (">")
)

// Symbol colors follow clinical convention: red for the right ear, blue for
// the left, independent of conduction.
const (
	ColorRight = "#EF4444"
	ColorLeft  = "#3B82F6"
)

// PaneStyle describes how one ear/conduction combination is rendered.
type PaneStyle struct {
	Symbol      SymbolKind
	ConnectLine bool
	Color       string
}

// paneStyles is the exhaustive rendering dispatch for the four
// (ear, conduction) combinations, indexed by earIndex/conductionIndex.
var paneStyles = [2][2]PaneStyle{
	{ // right
		{Symbol: SymbolCircle, ConnectLine: true, Color: ColorRight},
		{Symbol: SymbolLeftBracket, ConnectLine: false, Color: ColorRight},
	},
	{ // left
		{Symbol: SymbolCross, ConnectLine: true, Color: ColorLeft},
		{Symbol: SymbolRightBracket, ConnectLine: false, Color: ColorLeft},
	},
}

// StyleFor returns the rendering style for an ear/conduction pane.
func StyleFor(ear Ear, c Conduction) PaneStyle {
	return paneStyles[earIndex(ear)][conductionIndex(c)]
}
