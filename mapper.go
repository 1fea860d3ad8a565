package xlgrid

import "fmt"

// ToFlat converts a logical address to the renderer-facing flat index.
// It does not bounds-check row or column; Grid.ToFlat does.
func ToFlat(addr GridAddress, columnCount int) (FlatIndex, error) {
	if columnCount <= 0 {
		return FlatIndex{}, fmt.Errorf("%w: %d", ErrInvalidColumnCount, columnCount)
	}
	return FlatIndex{Section: addr.Section, Item: addr.Row*columnCount + addr.Column}, nil
}

// ToAddress converts a flat index back to its logical address.
func ToAddress(flat FlatIndex, columnCount int) (GridAddress, error) {
	if columnCount <= 0 {
		return GridAddress{}, fmt.Errorf("%w: %d", ErrInvalidColumnCount, columnCount)
	}
	return GridAddress{
		Section: flat.Section,
		Row:     flat.Item / columnCount,
		Column:  flat.Item % columnCount,
	}, nil
}

// flatOf is ToFlat for callers that already validated columnCount.
func flatOf(addr GridAddress, columnCount int) FlatIndex {
	return FlatIndex{Section: addr.Section, Item: addr.Row*columnCount + addr.Column}
}

// addressOf is ToAddress for callers that already validated columnCount.
func addressOf(flat FlatIndex, columnCount int) GridAddress {
	return GridAddress{Section: flat.Section, Row: flat.Item / columnCount, Column: flat.Item % columnCount}
}
