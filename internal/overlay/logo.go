package overlay

// logoLines is the fixed-height header drawn at the top of the panel.
var logoLines = []string{
	" ____  _  ____   ___      _    ____  _  __",
	"/ ___|| |/ /\\ \\ / / |    / \\  |  _ \\| |/ /",
	"\\___ \\| ' /  \\ V /| |   / _ \\ | |_) | ' / ",
	" ___) | . \\   | | | |__/ ___ \\|  _ <| . \\ ",
	"|____/|_|\\_\\  |_| |_____/   \\_\\_| \\_\\_|\\_\\",
}
