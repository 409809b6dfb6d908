package shape

// Orientation templates, '1' marks an occupied cell. Each kind cycles
// through its own list, so O has one state and I, S, Z have two.
var catalog = [Count]Shape{
	J: {
		Kind:  J,
		Name:  "J",
		Color: "#3355ff",
		Orientations: []Mask{
			mask("1...", "111.", "....", "...."),
			mask(".11.", ".1..", ".1..", "...."),
			mask("....", "111.", "..1.", "...."),
			mask(".1..", ".1..", "11..", "...."),
		},
	},
	O: {
		Kind:  O,
		Name:  "O",
		Color: "#f0d000",
		Orientations: []Mask{
			mask("....", ".11.", ".11.", "...."),
		},
	},
	Z: {
		Kind:  Z,
		Name:  "Z",
		Color: "#ee3333",
		Orientations: []Mask{
			mask("11..", ".11.", "....", "...."),
			mask("..1.", ".11.", ".1..", "...."),
		},
	},
	S: {
		Kind:  S,
		Name:  "S",
		Color: "#33cc33",
		Orientations: []Mask{
			mask(".11.", "11..", "....", "...."),
			mask(".1..", ".11.", "..1.", "...."),
		},
	},
	L: {
		Kind:  L,
		Name:  "L",
		Color: "#ff9900",
		Orientations: []Mask{
			mask("..1.", "111.", "....", "...."),
			mask(".1..", ".1..", ".11.", "...."),
			mask("....", "111.", "1...", "...."),
			mask("11..", ".1..", ".1..", "...."),
		},
	},
	T: {
		Kind:  T,
		Name:  "T",
		Color: "#aa33cc",
		Orientations: []Mask{
			mask(".1..", "111.", "....", "...."),
			mask(".1..", ".11.", ".1..", "...."),
			mask("....", "111.", ".1..", "...."),
			mask(".1..", "11..", ".1..", "...."),
		},
	},
	I: {
		Kind:  I,
		Name:  "I",
		Color: "#00dddd",
		Orientations: []Mask{
			mask("....", "1111", "....", "...."),
			mask(".1..", ".1..", ".1..", ".1.."),
		},
	},
}

func mask(rows ...string) Mask {
	if len(rows) != Size {
		panic("shape: template must have 4 rows")
	}
	var m Mask
	for r, line := range rows {
		if len(line) != Size {
			panic("shape: template row must have 4 columns: " + line)
		}
		for c := range Size {
			m[r][c] = line[c] == '1'
		}
	}
	return m
}
