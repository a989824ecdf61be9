package palette

// Source is a uniform integer source in [0, n).
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// BlobColors is the table new blobs draw their colour from.
var BlobColors = [...]Color{
	Red, Green,
	Blue, RedOrange,
	Orange, YellowOrange,
	YellowGreen, BlueGreen,
	BlueViolet, Violet,
	RedViolet, Cyan,
}

// RandBlobColor returns one entry of BlobColors chosen uniformly by src.
func RandBlobColor(src Source) Color {
	return BlobColors[src.Intn(len(BlobColors))]
}
