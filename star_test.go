package star_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	star "github.com/nefkit/go-star"
)

func TestParse_Document(t *testing.T) {
	input := `data_Entry

_title         'NMR structure'
_version       3.1
_solvent       H2O

save_shifts

   _category  chemical_shifts

   loop_
      _id
      _value

      1  8.25
      2  120.4
   stop_

save_

# trailing comment
`

	doc, err := star.Parse(input)
	require.NoError(t, err)

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)

	block := blocks[0]
	require.Equal(t, "data_entry", block.Name())

	// Quoted values come back as plain strings, unquoted ones as
	// UnquotedValue.
	require.Equal(t, "NMR structure", block.Item("_title"))
	require.Equal(t, star.UnquotedValue("3.1"), block.Item("_version"))
	require.Equal(t, star.UnquotedValue("H2O"), block.Item("_solvent"))

	frame, ok := block.Item("save_shifts").(*star.SaveFrame)
	require.True(t, ok, "save_shifts should be a saveframe")
	require.Equal(t, "save_shifts", frame.Name())
	require.Equal(t, star.UnquotedValue("chemical_shifts"), frame.Item("_category"))

	loop, ok := frame.Item("_id").(*star.Loop)
	require.True(t, ok, "_id should resolve to a loop")
	require.Equal(t, "_id", loop.Name())
	require.Equal(t, []string{"_id", "_value"}, loop.Columns())
	require.Len(t, loop.Rows, 2)
	require.Equal(t, star.UnquotedValue("1"), loop.Rows[0]["_id"])
	require.Equal(t, star.UnquotedValue("8.25"), loop.Rows[0]["_value"])
	require.Equal(t, star.UnquotedValue("2"), loop.Rows[1]["_id"])
	require.Equal(t, star.UnquotedValue("120.4"), loop.Rows[1]["_value"])
}

func TestParse_LoopAliasing(t *testing.T) {
	input := `data_a
loop_
   _x
   _y
   1  2
stop_
`

	doc, err := star.Parse(input)
	require.NoError(t, err)

	block := doc.Blocks()[0]
	require.Equal(t, []string{"_x", "_y"}, block.Keys())

	// The one loop is registered under each of its column names.
	lx, ok := block.Item("_x").(*star.Loop)
	require.True(t, ok)
	ly, ok := block.Item("_y").(*star.Loop)
	require.True(t, ok)
	require.Same(t, lx, ly)
}

func TestParse_MultilineValue(t *testing.T) {
	input := `data_a
_desc
;
First line.
Second line.
;
_short
;one line
;
`

	doc, err := star.Parse(input)
	require.NoError(t, err)

	block := doc.Blocks()[0]
	require.Equal(t, "\nFirst line.\nSecond line.", block.Item("_desc"))
	require.Equal(t, "one line", block.Item("_short"))
}

func TestParse_CaseFolding(t *testing.T) {
	input := `DATA_Entry
_Tag  Value
SAVE_Frame
_Inner  X
SAVE_
`

	t.Run("names and tags are lowercased by default", func(t *testing.T) {
		doc, err := star.Parse(input)
		require.NoError(t, err)

		block := doc.Blocks()[0]
		require.Equal(t, "data_entry", block.Name())
		require.Equal(t, []string{"_tag", "save_frame"}, block.Keys())
		require.Equal(t, star.UnquotedValue("Value"), block.Item("_tag"))

		frame := block.Item("save_frame").(*star.SaveFrame)
		require.Equal(t, "save_frame", frame.Name())
		require.Equal(t, star.UnquotedValue("X"), frame.Item("_inner"))
	})

	t.Run("WithKeepCase preserves the source case", func(t *testing.T) {
		doc, err := star.Parse(input, star.WithKeepCase())
		require.NoError(t, err)

		block := doc.Blocks()[0]
		require.Equal(t, "DATA_Entry", block.Name())
		require.Equal(t, []string{"_Tag", "SAVE_Frame"}, block.Keys())

		frame := block.Item("SAVE_Frame").(*star.SaveFrame)
		require.Equal(t, "SAVE_Frame", frame.Name())
		require.Equal(t, star.UnquotedValue("X"), frame.Item("_Inner"))
	})
}

func TestParse_Globals(t *testing.T) {
	t.Run("leading global block keeps the bare name", func(t *testing.T) {
		doc, err := star.Parse("global_\n_type  general\ndata_main\n_name  test\n")
		require.NoError(t, err)

		blocks := doc.Blocks()
		require.Len(t, blocks, 2)
		require.Equal(t, "global_", blocks[0].Name())
		require.Equal(t, star.UnquotedValue("general"), blocks[0].Item("_type"))
		require.Equal(t, "data_main", blocks[1].Name())
	})

	t.Run("later global blocks are numbered", func(t *testing.T) {
		doc, err := star.Parse("data_main\n_name  test\nglobal_\n_type  general\n")
		require.NoError(t, err)

		blocks := doc.Blocks()
		require.Len(t, blocks, 2)
		require.Equal(t, "global_1", blocks[1].Name())
	})
}

func TestParse_Modes(t *testing.T) {
	unterminatedFrame := `data_a
save_f
_x  1
data_b
_y  2
`

	t.Run("missing save_ terminator rejected by default", func(t *testing.T) {
		_, err := star.Parse(unterminatedFrame)
		require.Error(t, err)
		require.Contains(t, err.Error(), "saveframe terminated by data_b")
	})

	t.Run("missing save_ terminator tolerated when lenient", func(t *testing.T) {
		doc, err := star.Parse(unterminatedFrame, star.WithMode(star.Lenient))
		require.NoError(t, err)

		blocks := doc.Blocks()
		require.Len(t, blocks, 2)
		frame := blocks[0].Item("save_f").(*star.SaveFrame)
		require.Equal(t, star.UnquotedValue("1"), frame.Item("_x"))
		require.Equal(t, star.UnquotedValue("2"), blocks[1].Item("_y"))
	})

	t.Run("unterminated saveframe at end of input is closed", func(t *testing.T) {
		doc, err := star.Parse("data_a\nsave_f\n_x  1\n")
		require.NoError(t, err)

		frame := doc.Blocks()[0].Item("save_f").(*star.SaveFrame)
		require.Equal(t, star.UnquotedValue("1"), frame.Item("_x"))
	})

	missingStop := `data_a
loop_
   _i
   _j
   1  2
_t  v
`

	t.Run("missing stop_ closes the loop implicitly", func(t *testing.T) {
		doc, err := star.Parse(missingStop)
		require.NoError(t, err)

		block := doc.Blocks()[0]
		loop := block.Item("_i").(*star.Loop)
		require.Len(t, loop.Rows, 1)
		require.Equal(t, star.UnquotedValue("v"), block.Item("_t"))
	})

	t.Run("missing stop_ rejected when strict", func(t *testing.T) {
		_, err := star.Parse(missingStop, star.WithMode(star.Strict))
		require.Error(t, err)
		require.Contains(t, err.Error(), "illegal token _t in unclosed loop")
	})

	incompleteLoop := `data_a
loop_
   _i
   _j
   1  2  3
stop_
`

	t.Run("incomplete loop rejected by default", func(t *testing.T) {
		_, err := star.Parse(incompleteLoop)
		require.Error(t, err)
		require.Contains(t, err.Error(), "missing 1 values")
	})

	t.Run("incomplete loop padded when lenient", func(t *testing.T) {
		doc, err := star.Parse(incompleteLoop, star.WithMode(star.Lenient))
		require.NoError(t, err)

		loop := doc.Blocks()[0].Item("_i").(*star.Loop)
		require.Len(t, loop.Rows, 2)
		require.Equal(t, star.UnquotedValue("3"), loop.Rows[1]["_i"])
		require.Equal(t, star.NullValue, loop.Rows[1]["_j"])
	})

	t.Run("incomplete loop at end of input", func(t *testing.T) {
		_, err := star.Parse("data_a\nloop_\n_i\n_j\n1\n")
		require.Error(t, err)
		require.Contains(t, err.Error(), "missing 1 values")

		doc, err := star.Parse("data_a\nloop_\n_i\n_j\n1\n", star.WithMode(star.Lenient))
		require.NoError(t, err)
		loop := doc.Blocks()[0].Item("_i").(*star.Loop)
		require.Len(t, loop.Rows, 1)
		require.Equal(t, star.NullValue, loop.Rows[0]["_j"])
	})

	t.Run("square bracket values accepted by default", func(t *testing.T) {
		doc, err := star.Parse("data_a\n_v  [1,2]\n")
		require.NoError(t, err)
		require.Equal(t, star.UnquotedValue("[1,2]"), doc.Blocks()[0].Item("_v"))
	})

	t.Run("square bracket values rejected by iucr profile", func(t *testing.T) {
		_, err := star.Parse("data_a\n_v  [1,2]\n", star.WithMode(star.IUCr))
		require.Error(t, err)
		require.Contains(t, err.Error(), "illegal token of type BRACKET")
	})

	loopAfterLoop := `data_a
loop_
   _i
   1
loop_
   _j
   2
stop_
`

	t.Run("loop_ closes a loop with values unless strict", func(t *testing.T) {
		doc, err := star.Parse(loopAfterLoop)
		require.NoError(t, err)

		block := doc.Blocks()[0]
		first := block.Item("_i").(*star.Loop)
		second := block.Item("_j").(*star.Loop)
		require.Len(t, first.Rows, 1)
		require.Len(t, second.Rows, 1)

		_, err = star.Parse(loopAfterLoop, star.WithMode(star.Strict))
		require.Error(t, err)
		require.Contains(t, err.Error(), "loop terminated by loop_")
	})

	t.Run("loop_ inside a loop header is always rejected", func(t *testing.T) {
		_, err := star.Parse("data_a\nloop_\n_i\nloop_\n", star.WithMode(star.Lenient))
		require.Error(t, err)
		require.Contains(t, err.Error(), "loop terminated by loop_")
	})
}

func TestParse_Errors(t *testing.T) {
	t.Run("value outside any container", func(t *testing.T) {
		_, err := star.Parse("stray\n")
		require.Error(t, err)
		require.Contains(t, err.Error(), "must be in item or loop_")
	})

	t.Run("item name outside any block", func(t *testing.T) {
		_, err := star.Parse("_tag  value\n")
		require.Error(t, err)
		require.Contains(t, err.Error(), "item name _tag")
	})

	t.Run("input ends with an item name", func(t *testing.T) {
		_, err := star.Parse("data_a\n_tag\n")
		require.Error(t, err)
		require.Contains(t, err.Error(), "input ends with item name _tag")
	})

	t.Run("stop_ outside a loop", func(t *testing.T) {
		_, err := star.Parse("data_a\nstop_\n")
		require.Error(t, err)
		require.Contains(t, err.Error(), "stop_ outside loop")
	})

	t.Run("loop without column names", func(t *testing.T) {
		_, err := star.Parse("data_a\nloop_\nstop_\n")
		require.Error(t, err)
		require.Contains(t, err.Error(), "loop lacks column names")
	})

	t.Run("empty loop is allowed", func(t *testing.T) {
		doc, err := star.Parse("data_a\nloop_\n_i\n_j\nstop_\n")
		require.NoError(t, err)

		loop := doc.Blocks()[0].Item("_i").(*star.Loop)
		require.Empty(t, loop.Rows)
	})

	t.Run("save_ terminator without a data block", func(t *testing.T) {
		_, err := star.Parse("save_\n")
		require.Error(t, err)
		require.Contains(t, err.Error(), "save_ found out of context")
	})

	t.Run("saveframe start without a data block", func(t *testing.T) {
		_, err := star.Parse("save_frame\n")
		require.Error(t, err)
		require.Contains(t, err.Error(), "saveframe start out of context")
	})

	t.Run("duplicate tag", func(t *testing.T) {
		_, err := star.Parse("data_a\n_t  1\n_t  2\n")
		require.Error(t, err)
		require.Contains(t, err.Error(), "duplicate tag _t")
	})

	t.Run("duplicate data block name", func(t *testing.T) {
		_, err := star.Parse("data_a\n_x  1\ndata_a\n")
		require.Error(t, err)
		require.Contains(t, err.Error(), "duplicate tag data_a")
	})

	t.Run("bad construct", func(t *testing.T) {
		_, err := star.Parse("data_a\n_t  stop_now\n")
		require.Error(t, err)
		require.Contains(t, err.Error(), "illegal token of type BADCONSTRUCT")
	})

	t.Run("unterminated quote", func(t *testing.T) {
		_, err := star.Parse("data_a\n_t  'open\n")
		require.Error(t, err)
		require.Contains(t, err.Error(), "illegal token of type BADTOKEN")
	})
}

func TestParse_SyntaxErrorDetails(t *testing.T) {
	input := `data_blk
save_frm
_tag
_other  1
`

	_, err := star.Parse(input)
	require.Error(t, err)

	var syntaxErr *star.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	require.Equal(t, []string{"data_blk", "save_frm", "_tag"}, syntaxErr.Context)
	require.Equal(t, "_other", syntaxErr.Token)
	require.Equal(t, 4, syntaxErr.Line)
	require.Equal(t, 1, syntaxErr.Column)
	require.Contains(t, syntaxErr.Msg, "item name _other")
}

func TestParse_UnquotedSpecials(t *testing.T) {
	input := `data_a
_null     .
_unknown  ?
_ref      $frame_1
_hash     abc#def
`

	doc, err := star.Parse(input)
	require.NoError(t, err)

	block := doc.Blocks()[0]
	require.Equal(t, star.NullValue, block.Item("_null"))
	require.Equal(t, star.UnknownValue, block.Item("_unknown"))
	require.Equal(t, star.UnquotedValue("$frame_1"), block.Item("_ref"))

	// A hash only starts a comment at the beginning of a field.
	require.Equal(t, star.UnquotedValue("abc#def"), block.Item("_hash"))
}

func TestParse_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\t\n", "# only a comment\n"} {
		doc, err := star.Parse(input)
		require.NoError(t, err)
		require.Empty(t, doc.Blocks())
	}
}
