package nef

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/tliron/commonlog"

	star "github.com/nefkit/go-star"
)

var log = commonlog.GetLogger("nef.importer")

// FormatName and FormatVersion identify the NEF revision written into
// new documents' metadata.
const (
	FormatName    = "Nmr_Exchange_Format"
	FormatVersion = "1.1"
)

const nefPrefix = "nef_"

// ErrorPolicy selects how Importer operations report failure. Propagate
// returns errors to the caller. LogAndContinue logs them and returns
// zero values with a nil error; Silent does the same without logging.
// LastError reports the most recent failure under every policy.
type ErrorPolicy int

const (
	Propagate ErrorPolicy = iota
	LogAndContinue
	Silent
)

// FrameFilter selects which saveframe names FrameNames returns.
type FrameFilter int

const (
	// AllFrames returns every saveframe name.
	AllFrames FrameFilter = iota
	// NefFrames returns only names carrying the nef_ prefix.
	NefFrames
	// OtherFrames returns only names without the nef_ prefix.
	OtherFrames
)

// WithPolicy sets how operations report failure.
func WithPolicy(p ErrorPolicy) Option {
	return func(c *config) { c.policy = p }
}

// WithLogger replaces the logger used by the LogAndContinue policy.
func WithLogger(l commonlog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithKeepPrefix stops the hiding of nef_ category prefixes: names are
// then passed through and returned untouched.
func WithKeepPrefix() Option {
	return func(c *config) { c.hidePrefix = false }
}

// WithSafeWrites makes SaveFile refuse to overwrite: an existing file
// diverts the write to the first free (n)-numbered name.
func WithSafeWrites() Option {
	return func(c *config) { c.safeWrites = true }
}

// WithProgram records the program name and version written into new
// documents' metadata.
func WithProgram(name, version string) Option {
	return func(c *config) { c.program, c.programVersion = name, version }
}

// nefFrameCategories are the saveframe categories the NEF standard
// defines, in its order.
var nefFrameCategories = []string{
	"nef_nmr_meta_data",
	"nef_molecular_system",
	"nef_chemical_shift_list",
	"nef_distance_restraint_list",
	"nef_dihedral_restraint_list",
	"nef_rdc_restraint_list",
	"nef_nmr_spectrum",
	"nef_peak_restraint_links",
}

// nefLoopCategories are the loop categories of those frames. Together
// with the frame categories they bound the prefix hiding: only names
// built on a known category ever have nef_ stripped or inserted.
var nefLoopCategories = []string{
	"nef_related_entries",
	"nef_program_script",
	"nef_run_history",
	"nef_sequence",
	"nef_covalent_links",
	"nef_chemical_shift",
	"nef_distance_restraint",
	"nef_dihedral_restraint",
	"nef_rdc_restraint",
	"nef_spectrum_dimension",
	"nef_spectrum_dimension_transfer",
	"nef_peak",
	"nef_peak_restraint_link",
}

type frameTemplate struct {
	fields []string
	loops  []loopTemplate
}

type loopTemplate struct {
	name    string
	columns []string
}

// frameTemplates holds the mandatory items and loops per saveframe
// category. AddFrame seeds new frames from these, with loop columns
// taken from the standard's required fields.
var frameTemplates = map[string]frameTemplate{
	"nef_nmr_meta_data": {
		fields: []string{"sf_category", "sf_framecode", "format_name", "format_version",
			"program_name", "program_version", "creation_date", "uuid"},
	},
	"nef_molecular_system": {
		fields: []string{"sf_category", "sf_framecode"},
		loops: []loopTemplate{{
			name:    "nef_sequence",
			columns: []string{"chain_code", "sequence_code", "residue_type", "linking", "residue_variant"},
		}},
	},
	"nef_chemical_shift_list": {
		fields: []string{"sf_category", "sf_framecode", "atom_chem_shift_units"},
		loops: []loopTemplate{{
			name:    "nef_chemical_shift",
			columns: []string{"chain_code", "sequence_code", "residue_type", "atom_name", "value"},
		}},
	},
	"nef_distance_restraint_list": {
		fields: []string{"sf_category", "sf_framecode", "potential_type"},
		loops: []loopTemplate{{
			name: "nef_distance_restraint",
			columns: []string{"ordinal", "restraint_id",
				"chain_code_1", "sequence_code_1", "residue_type_1", "atom_name_1",
				"chain_code_2", "sequence_code_2", "residue_type_2", "atom_name_2",
				"weight"},
		}},
	},
	"nef_dihedral_restraint_list": {
		fields: []string{"sf_category", "sf_framecode", "potential_type"},
		loops: []loopTemplate{{
			name: "nef_dihedral_restraint",
			columns: []string{"ordinal", "restraint_id", "restraint_combination_id",
				"chain_code_1", "sequence_code_1", "residue_type_1", "atom_name_1",
				"chain_code_2", "sequence_code_2", "residue_type_2", "atom_name_2",
				"chain_code_3", "sequence_code_3", "residue_type_3", "atom_name_3",
				"chain_code_4", "sequence_code_4", "residue_type_4", "atom_name_4",
				"weight"},
		}},
	},
	"nef_rdc_restraint_list": {
		fields: []string{"sf_category", "sf_framecode", "potential_type"},
		loops: []loopTemplate{{
			name: "nef_rdc_restraint",
			columns: []string{"ordinal", "restraint_id",
				"chain_code_1", "sequence_code_1", "residue_type_1", "atom_name_1",
				"chain_code_2", "sequence_code_2", "residue_type_2", "atom_name_2",
				"weight"},
		}},
	},
	"nef_nmr_spectrum": {
		fields: []string{"sf_category", "sf_framecode", "num_dimensions", "chemical_shift_list"},
		loops: []loopTemplate{
			{name: "nef_spectrum_dimension", columns: []string{"dimension_id", "axis_unit", "axis_code"}},
			{name: "nef_spectrum_dimension_transfer", columns: []string{"dimension_1", "dimension_2", "transfer_type"}},
			{name: "nef_peak", columns: []string{"ordinal", "peak_id"}},
		},
	},
	"nef_peak_restraint_links": {
		fields: []string{"sf_category", "sf_framecode"},
		loops: []loopTemplate{{
			name:    "nef_peak_restraint_link",
			columns: []string{"nmr_spectrum_id", "peak_id", "restraint_list_id", "restraint_id"},
		}},
	},
}

// Importer is a document handle for whole NEF files: one data block of
// saveframes, accessed by name or category, with the nef_ prefix hidden
// from names unless WithKeepPrefix was given.
type Importer struct {
	cfg     config
	block   *star.DataBlock
	path    string
	lastErr error
}

// NewImporter returns an importer holding no document. Fill it with
// LoadFile, LoadText, or NewDocument.
func NewImporter(opts ...Option) *Importer {
	return &Importer{cfg: newConfig(opts)}
}

// fail applies the error policy: Propagate hands the error back,
// LogAndContinue logs it and discards it, Silent just discards it.
func (imp *Importer) fail(err error) error {
	if err == nil {
		return nil
	}
	imp.lastErr = err
	switch imp.cfg.policy {
	case LogAndContinue:
		imp.cfg.logger.Errorf("%s", err)
		return nil
	case Silent:
		return nil
	}
	return err
}

// LastError returns the error recorded by the most recent failing
// operation, under every policy.
func (imp *Importer) LastError() error { return imp.lastErr }

// Block returns the underlying data block, nil when nothing is loaded.
func (imp *Importer) Block() *star.DataBlock { return imp.block }

// Name returns the document's block name, empty when nothing is loaded.
func (imp *Importer) Name() string {
	if imp.block == nil {
		return ""
	}
	return imp.block.Name()
}

// Path returns the path of the last loaded file, empty for text input.
func (imp *Importer) Path() string { return imp.path }

func (imp *Importer) removePrefix(name string) string {
	if !imp.cfg.hidePrefix {
		return name
	}
	for _, cat := range nefFrameCategories {
		if strings.HasPrefix(name, cat) {
			return strings.TrimPrefix(name, nefPrefix)
		}
	}
	for _, cat := range nefLoopCategories {
		if strings.HasPrefix(name, cat) {
			return strings.TrimPrefix(name, nefPrefix)
		}
	}
	return name
}

func (imp *Importer) insertPrefix(name string) string {
	if !imp.cfg.hidePrefix {
		return name
	}
	for _, cat := range nefFrameCategories {
		if strings.HasPrefix(name, strings.TrimPrefix(cat, nefPrefix)) {
			return nefPrefix + name
		}
	}
	for _, cat := range nefLoopCategories {
		if strings.HasPrefix(name, strings.TrimPrefix(cat, nefPrefix)) {
			return nefPrefix + name
		}
	}
	return name
}

// NewDocument resets the importer to a fresh document holding the
// frames the NEF standard requires: metadata, a molecular system, and
// one chemical shift list. The new block is returned.
func (imp *Importer) NewDocument(name string) *star.DataBlock {
	imp.block = star.NewDataBlock(name)
	imp.path = ""

	meta, _ := imp.AddFrame("nef_nmr_meta_data", "nef_nmr_meta_data")
	meta.Set("format_name", FormatName)
	meta.Set("format_version", FormatVersion)
	meta.Set("program_name", imp.cfg.program)
	meta.Set("program_version", imp.cfg.programVersion)
	meta.Set("creation_date", time.Now().UTC().Format(time.RFC3339))

	imp.AddFrame("nef_molecular_system", "nef_molecular_system")
	imp.AddChemicalShiftList("nef_chemical_shift_list_1", "ppm")

	return imp.block
}

// LoadFile reads, parses, and converts a NEF file, keeping its single
// data block as the importer's document.
func (imp *Importer) LoadFile(path string) (*star.DataBlock, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, imp.fail(err)
	}
	block, err := imp.load(string(text))
	if err != nil {
		return nil, imp.fail(err)
	}
	imp.block = block
	imp.path = path
	return block, nil
}

// LoadText parses and converts NEF text.
func (imp *Importer) LoadText(text string) (*star.DataBlock, error) {
	block, err := imp.load(text)
	if err != nil {
		return nil, imp.fail(err)
	}
	imp.block = block
	imp.path = ""
	return block, nil
}

// FromString replaces the document with the parse of text, the inverse
// of String.
func (imp *Importer) FromString(text string) error {
	_, err := imp.LoadText(text)
	return err
}

func (imp *Importer) load(text string) (*star.DataBlock, error) {
	extent, err := parseDialect(text, fileTypeNef, imp.cfg)
	if err != nil {
		return nil, err
	}
	blocks := extent.Blocks()
	if len(blocks) == 0 {
		return nil, fmt.Errorf("nef: load: %w", ErrNoData)
	}
	if len(blocks) > 1 {
		return nil, fmt.Errorf("nef: load: %w", ErrMultipleBlocks)
	}
	return blocks[0], nil
}

// String renders the document as NEF text, empty when nothing is
// loaded.
func (imp *Importer) String() string {
	if imp.block == nil {
		return ""
	}
	return imp.block.String()
}

// WriteTo writes the document as NEF text.
func (imp *Importer) WriteTo(w io.Writer) (int64, error) {
	if imp.block == nil {
		return 0, imp.fail(fmt.Errorf("nef: write: %w", ErrNoData))
	}
	n, err := io.WriteString(w, imp.block.String())
	if err != nil {
		return int64(n), imp.fail(err)
	}
	return int64(n), nil
}

// SaveFile writes the document to path and returns the path actually
// written, which differs when WithSafeWrites found the name taken.
func (imp *Importer) SaveFile(path string) (string, error) {
	if imp.block == nil {
		return "", imp.fail(fmt.Errorf("nef: save %s: %w", path, ErrNoData))
	}
	text := imp.block.String()
	if !imp.cfg.safeWrites {
		if err := os.WriteFile(path, []byte(text), 0o666); err != nil {
			return "", imp.fail(err)
		}
		return path, nil
	}
	f, name, err := createSafe(path)
	if err != nil {
		return "", imp.fail(err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return "", imp.fail(err)
	}
	if err := f.Close(); err != nil {
		return "", imp.fail(err)
	}
	return name, nil
}

// Categories returns the saveframe categories defined by the NEF
// standard, prefix-hidden like every other returned name.
func (imp *Importer) Categories() []string {
	names := make([]string, len(nefFrameCategories))
	for i, cat := range nefFrameCategories {
		names[i] = imp.removePrefix(cat)
	}
	return names
}

// FrameNames returns the saveframe names in the document. NefFrames
// keeps only names with the nef_ prefix, OtherFrames only names
// without it.
func (imp *Importer) FrameNames(filter FrameFilter) []string {
	if imp.block == nil {
		return nil
	}
	var names []string
	for _, key := range imp.block.Keys() {
		if _, ok := imp.block.Item(key).(*star.SaveFrame); !ok {
			continue
		}
		switch filter {
		case NefFrames:
			if strings.HasPrefix(key, nefPrefix) {
				names = append(names, imp.removePrefix(key))
			}
		case OtherFrames:
			if !strings.HasPrefix(key, nefPrefix) {
				names = append(names, key)
			}
		default:
			names = append(names, imp.removePrefix(key))
		}
	}
	return names
}

// HasFrame reports whether the document holds an entry for the frame
// name.
func (imp *Importer) HasFrame(name string) bool {
	return imp.block != nil && imp.block.Has(imp.insertPrefix(name))
}

// Frame returns the named saveframe.
func (imp *Importer) Frame(name string) (*star.SaveFrame, error) {
	if imp.block == nil {
		return nil, imp.fail(fmt.Errorf("nef: frame %q: %w", name, ErrNoData))
	}
	key := imp.insertPrefix(name)
	frame, ok := imp.block.Item(key).(*star.SaveFrame)
	if !ok {
		return nil, imp.fail(fmt.Errorf("nef: frame %q: %w", key, ErrFrameNotFound))
	}
	return frame, nil
}

// AddFrame adds a saveframe with the category's required items present
// but empty and its required loops carrying their standard columns. An
// existing frame of the same name is replaced.
func (imp *Importer) AddFrame(name, category string) (*star.SaveFrame, error) {
	if imp.block == nil {
		return nil, imp.fail(fmt.Errorf("nef: add frame %q: %w", name, ErrNoData))
	}
	name = imp.insertPrefix(name)

	frame := star.NewSaveFrame(name)
	frame.Category = category
	frame.TagPrefix = "_" + category + "."

	tmpl := frameTemplates[category]
	for _, field := range tmpl.fields {
		frame.Set(field, "")
	}
	frame.Set("sf_category", category)
	frame.Set("sf_framecode", name)
	for _, lt := range tmpl.loops {
		loop := star.NewLoop(lt.name, lt.columns...)
		loop.TagPrefix = "_" + lt.name + "."
		frame.Set(lt.name, loop)
	}

	imp.block.Set(name, frame)
	return frame, nil
}

// DeleteFrame removes the named frame and reports whether it existed.
func (imp *Importer) DeleteFrame(name string) bool {
	return imp.block != nil && imp.block.Remove(imp.insertPrefix(name))
}

// RenameFrame renames a saveframe in place: the frame keeps its
// position and category, serial decorations like `2` in the framecode
// survive, and sf_framecode is updated to the new full code.
func (imp *Importer) RenameFrame(name, newName string) error {
	if imp.block == nil {
		return imp.fail(fmt.Errorf("nef: rename %q: %w", name, ErrNoData))
	}
	key := imp.insertPrefix(name)
	frame, ok := imp.block.Item(key).(*star.SaveFrame)
	if !ok {
		return imp.fail(fmt.Errorf("nef: frame %q: %w", key, ErrFrameNotFound))
	}
	if imp.block.Has(newName) {
		return imp.fail(fmt.Errorf("nef: frame %q: %w", newName, ErrFrameExists))
	}

	category := stringValue(frame.Item("sf_category"))
	if category == "" {
		return imp.fail(fmt.Errorf("nef: frame %q lacks sf_category", key))
	}
	parsed := parseFrameName(category, stringValue(frame.Item("sf_framecode")))
	full := category + "_" + parsed.prefix + newName + parsed.postfix

	if err := imp.block.Rename(key, full); err != nil {
		return imp.fail(err)
	}
	frame.SetName(full)
	frame.Set("sf_framecode", full)
	if frame.Has("name") {
		frame.Set("name", newName)
	}
	return nil
}

// AddChemicalShiftList adds a nef_chemical_shift_list frame with the
// given shift units.
func (imp *Importer) AddChemicalShiftList(name, units string) (*star.SaveFrame, error) {
	frame, err := imp.AddFrame(name, "nef_chemical_shift_list")
	if err != nil || frame == nil {
		return nil, err
	}
	frame.Set("atom_chem_shift_units", units)
	return frame, nil
}

// AddDistanceRestraintList adds a nef_distance_restraint_list frame. An
// empty restraintOrigin leaves that item unset.
func (imp *Importer) AddDistanceRestraintList(name, potentialType, restraintOrigin string) (*star.SaveFrame, error) {
	return imp.addRestraintList(name, "nef_distance_restraint_list", potentialType, restraintOrigin)
}

// AddDihedralRestraintList adds a nef_dihedral_restraint_list frame.
func (imp *Importer) AddDihedralRestraintList(name, potentialType, restraintOrigin string) (*star.SaveFrame, error) {
	return imp.addRestraintList(name, "nef_dihedral_restraint_list", potentialType, restraintOrigin)
}

// AddRdcRestraintList adds a nef_rdc_restraint_list frame. Tensor items
// can be set on the returned frame.
func (imp *Importer) AddRdcRestraintList(name, potentialType, restraintOrigin string) (*star.SaveFrame, error) {
	return imp.addRestraintList(name, "nef_rdc_restraint_list", potentialType, restraintOrigin)
}

func (imp *Importer) addRestraintList(name, category, potentialType, restraintOrigin string) (*star.SaveFrame, error) {
	frame, err := imp.AddFrame(name, category)
	if err != nil || frame == nil {
		return nil, err
	}
	frame.Set("potential_type", potentialType)
	if restraintOrigin != "" {
		frame.Set("restraint_origin", restraintOrigin)
	}
	return frame, nil
}

// AddPeakList adds a nef_nmr_spectrum frame referring to an existing
// chemical shift list.
func (imp *Importer) AddPeakList(name string, numDimensions int, shiftList string) (*star.SaveFrame, error) {
	if imp.block == nil {
		return nil, imp.fail(fmt.Errorf("nef: add frame %q: %w", name, ErrNoData))
	}
	key := shiftList
	ref, ok := imp.block.Item(key).(*star.SaveFrame)
	if !ok {
		key = imp.insertPrefix(shiftList)
		if ref, ok = imp.block.Item(key).(*star.SaveFrame); !ok {
			return nil, imp.fail(fmt.Errorf("nef: chemical shift list %q: %w", shiftList, ErrFrameNotFound))
		}
	}
	if stringValue(ref.Item("sf_category")) != "nef_chemical_shift_list" {
		return nil, imp.fail(fmt.Errorf("nef: %s is not a nef_chemical_shift_list", shiftList))
	}
	frame, err := imp.AddFrame(name, "nef_nmr_spectrum")
	if err != nil || frame == nil {
		return nil, err
	}
	frame.Set("num_dimensions", numDimensions)
	frame.Set("chemical_shift_list", key)
	return frame, nil
}

// AddLinkageTable adds the nef_peak_restraint_links frame.
func (imp *Importer) AddLinkageTable() (*star.SaveFrame, error) {
	return imp.AddFrame("nef_peak_restraint_links", "nef_peak_restraint_links")
}

// AttributeNames returns the names of the block's non-saveframe
// entries.
func (imp *Importer) AttributeNames() []string {
	if imp.block == nil {
		return nil
	}
	var names []string
	for _, key := range imp.block.Keys() {
		if _, ok := imp.block.Item(key).(*star.SaveFrame); !ok {
			names = append(names, imp.removePrefix(key))
		}
	}
	return names
}

// Attribute returns the block-level value for name.
func (imp *Importer) Attribute(name string) (any, error) {
	if imp.block == nil {
		return nil, imp.fail(fmt.Errorf("nef: attribute %q: %w", name, ErrNoData))
	}
	key := imp.insertPrefix(name)
	v, ok := imp.block.Get(key)
	if !ok {
		return nil, imp.fail(fmt.Errorf("nef: attribute %q: %w", key, ErrAttributeNotFound))
	}
	return v, nil
}

// HasAttribute reports whether the block has an entry for name.
func (imp *Importer) HasAttribute(name string) bool {
	return imp.block != nil && imp.block.Has(imp.insertPrefix(name))
}

// TableNames returns the loop names of the frame.
func (imp *Importer) TableNames(frameName string) ([]string, error) {
	frame, err := imp.Frame(frameName)
	if err != nil || frame == nil {
		return nil, err
	}
	var names []string
	for _, key := range frame.Keys() {
		if _, ok := frame.Item(key).(*star.Loop); ok {
			names = append(names, imp.removePrefix(key))
		}
	}
	return names, nil
}

// Table returns the named loop of the frame, trying the name as given
// and with the nef_ prefix inserted. An empty name returns the frame's
// first loop.
func (imp *Importer) Table(frameName, name string) (*star.Loop, error) {
	frame, err := imp.Frame(frameName)
	if err != nil || frame == nil {
		return nil, err
	}
	if name == "" {
		for _, key := range frame.Keys() {
			if loop, ok := frame.Item(key).(*star.Loop); ok {
				return loop, nil
			}
		}
		return nil, imp.fail(fmt.Errorf("nef: frame %q has no tables: %w", frameName, ErrTableNotFound))
	}
	if loop, ok := frame.Item(name).(*star.Loop); ok {
		return loop, nil
	}
	if loop, ok := frame.Item(imp.insertPrefix(name)).(*star.Loop); ok {
		return loop, nil
	}
	return nil, imp.fail(fmt.Errorf("nef: table %q: %w", name, ErrTableNotFound))
}

// HasTable reports whether the frame holds a loop of that name.
func (imp *Importer) HasTable(frameName, name string) bool {
	frame, err := imp.Frame(frameName)
	if err != nil || frame == nil {
		return false
	}
	_, ok := frame.Item(imp.insertPrefix(name)).(*star.Loop)
	return ok
}

// framesByCategory returns the frames whose key contains the category
// name.
func (imp *Importer) framesByCategory(category string) []*star.SaveFrame {
	if imp.block == nil {
		return nil
	}
	var frames []*star.SaveFrame
	for _, key := range imp.block.Keys() {
		if !strings.Contains(key, category) {
			continue
		}
		if frame, ok := imp.block.Item(key).(*star.SaveFrame); ok {
			frames = append(frames, frame)
		}
	}
	return frames
}

// MetaData returns the nef_nmr_meta_data saveframes.
func (imp *Importer) MetaData() []*star.SaveFrame {
	return imp.framesByCategory("nef_nmr_meta_data")
}

// MolecularSystems returns the nef_molecular_system saveframes.
func (imp *Importer) MolecularSystems() []*star.SaveFrame {
	return imp.framesByCategory("nef_molecular_system")
}

// ChemicalShiftLists returns the nef_chemical_shift_list saveframes.
func (imp *Importer) ChemicalShiftLists() []*star.SaveFrame {
	return imp.framesByCategory("nef_chemical_shift_list")
}

// DistanceRestraintLists returns the nef_distance_restraint_list
// saveframes.
func (imp *Importer) DistanceRestraintLists() []*star.SaveFrame {
	return imp.framesByCategory("nef_distance_restraint_list")
}

// DihedralRestraintLists returns the nef_dihedral_restraint_list
// saveframes.
func (imp *Importer) DihedralRestraintLists() []*star.SaveFrame {
	return imp.framesByCategory("nef_dihedral_restraint_list")
}

// RdcRestraintLists returns the nef_rdc_restraint_list saveframes.
func (imp *Importer) RdcRestraintLists() []*star.SaveFrame {
	return imp.framesByCategory("nef_rdc_restraint_list")
}

// NmrSpectra returns the nef_nmr_spectrum saveframes.
func (imp *Importer) NmrSpectra() []*star.SaveFrame {
	return imp.framesByCategory("nef_nmr_spectrum")
}

// PeakRestraintLinks returns the nef_peak_restraint_links saveframes.
func (imp *Importer) PeakRestraintLinks() []*star.SaveFrame {
	return imp.framesByCategory("nef_peak_restraint_links")
}

// frameName is a saveframe code picked apart: the free name after the
// category, and any `n` serial decorations around it.
type frameName struct {
	framecode string
	name      string
	subname   string
	prefix    string
	postfix   string
}

var serialPattern = regexp.MustCompile("`[0-9]*`")

// parseFrameName splits a saveframe code into the pieces a rename must
// keep.
func parseFrameName(category, framecode string) frameName {
	var name string
	if len(framecode) > len(category) {
		name = framecode[len(category)+1:]
	}
	parsed := frameName{
		framecode: framecode,
		name:      name,
		subname:   serialPattern.ReplaceAllString(name, ""),
	}
	locs := serialPattern.FindAllStringIndex(name, -1)
	if len(locs) > 0 {
		if first := locs[0]; first[0] == 0 {
			parsed.prefix = name[first[0]:first[1]]
		}
		if last := locs[len(locs)-1]; last[1] == len(name) {
			parsed.postfix = name[last[0]:last[1]]
		}
	}
	return parsed
}
