package molecule

import "encoding/binary"

func readHeader(data []byte, at int) uint32 {
	return binary.LittleEndian.Uint32(data[at : at+HeaderSize])
}

// ReadByte verifies a byte cell.
func ReadByte(schema string, data []byte) (uint8, error) {
	if len(data) != 1 {
		return 0, malformedf(schema, "byte is %d bytes", len(data))
	}
	return data[0], nil
}

// ReadBool verifies a byte cell holding 0 or 1.
func ReadBool(schema string, data []byte) (bool, error) {
	v, err := ReadByte(schema, data)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, malformedf(schema, "boolean byte %d", v)
	}
}

// ReadUint16 verifies a [byte; 2] little-endian array.
func ReadUint16(schema string, data []byte) (uint16, error) {
	if len(data) != 2 {
		return 0, malformedf(schema, "array is %d bytes, want 2", len(data))
	}
	return binary.LittleEndian.Uint16(data), nil
}

// ReadStruct splits a struct into fields of the given sizes.
func ReadStruct(schema string, data []byte, sizes ...int) ([][]byte, error) {
	want := 0
	for _, size := range sizes {
		want += size
	}
	if len(data) != want {
		return nil, malformedf(schema, "struct is %d bytes, want %d", len(data), want)
	}
	fields := make([][]byte, 0, len(sizes))
	at := 0
	for _, size := range sizes {
		fields = append(fields, data[at:at+size])
		at += size
	}
	return fields, nil
}

// ReadFixVec splits a fixvec into items of itemSize bytes.
func ReadFixVec(schema string, data []byte, itemSize int) ([][]byte, error) {
	if len(data) < HeaderSize {
		return nil, malformedf(schema, "fixvec header truncated")
	}
	count := int(readHeader(data, 0))
	if len(data) != HeaderSize+count*itemSize {
		return nil, malformedf(schema, "fixvec of %d items is %d bytes", count, len(data))
	}
	items := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		at := HeaderSize + i*itemSize
		items = append(items, data[at:at+itemSize])
	}
	return items, nil
}

// ReadDynVec splits a dynvec into its items.
func ReadDynVec(schema string, data []byte) ([][]byte, error) {
	return readOffsets(schema, data)
}

// ReadTable splits a table and requires exactly fieldCount fields.
func ReadTable(schema string, data []byte, fieldCount int) ([][]byte, error) {
	fields, err := readOffsets(schema, data)
	if err != nil {
		return nil, err
	}
	if len(fields) != fieldCount {
		return nil, malformedf(schema, "table has %d fields, want %d", len(fields), fieldCount)
	}
	return fields, nil
}

// ReadUnion returns the union id and the item bytes.
func ReadUnion(u Union, data []byte) (uint32, []byte, error) {
	if len(data) < HeaderSize {
		return 0, nil, malformedf(u.Name, "union header truncated")
	}
	id := readHeader(data, 0)
	if _, ok := u.ItemName(id); !ok {
		return 0, nil, malformedf(u.Name, "unknown union id %d", id)
	}
	return id, data[HeaderSize:], nil
}

func readOffsets(schema string, data []byte) ([][]byte, error) {
	if len(data) < HeaderSize {
		return nil, malformedf(schema, "header truncated")
	}
	total := int(readHeader(data, 0))
	if total != len(data) {
		return nil, malformedf(schema, "total size %d, have %d bytes", total, len(data))
	}
	if total == HeaderSize {
		return [][]byte{}, nil
	}
	if total < 2*HeaderSize {
		return nil, malformedf(schema, "offset header truncated")
	}
	first := int(readHeader(data, HeaderSize))
	if first%HeaderSize != 0 || first < 2*HeaderSize || first > total {
		return nil, malformedf(schema, "first offset %d invalid", first)
	}
	count := first/HeaderSize - 1
	offsets := make([]int, 0, count+1)
	for i := 0; i < count; i++ {
		offsets = append(offsets, int(readHeader(data, HeaderSize*(i+1))))
	}
	offsets = append(offsets, total)
	items := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		start, end := offsets[i], offsets[i+1]
		if start > end || end > total {
			return nil, malformedf(schema, "offset %d out of order", i)
		}
		items = append(items, data[start:end])
	}
	return items, nil
}
