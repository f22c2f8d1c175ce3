package board

// Color is one of the two sides. White is side A (the maximising side),
// Black is side B.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	return [2]string{"White", "Black"}[c&1]
}

// PieceType is the kind of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

var pieceNames = [...]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}

func (pt PieceType) String() string {
	if pt > NoPieceType {
		pt = NoPieceType
	}
	return pieceNames[pt]
}

// PieceValue is the material weight of each piece type. The king carries no
// material value because it is never captured by a legal move.
var PieceValue = [7]int{1, 3, 3, 5, 9, 0, 0}

// pieceChars holds the FEN letters, white then black.
const pieceChars = "PNBRQKpnbrqk"

// Char returns the FEN letter of a piece of the given color.
func (pt PieceType) Char(c Color) byte {
	if pt >= NoPieceType {
		return '.'
	}
	return pieceChars[int(c)*6+int(pt)]
}

// pieceFromChar converts a FEN letter to its type and color.
func pieceFromChar(ch byte) (PieceType, Color, bool) {
	for i := 0; i < len(pieceChars); i++ {
		if pieceChars[i] == ch {
			return PieceType(i % 6), Color(i / 6), true
		}
	}
	return NoPieceType, White, false
}
