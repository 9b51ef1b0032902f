package itinerary

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/statenet/pkg/errors"
)

// Column scheme names accepted by [ResolveColumns].
const (
	SchemeAuto      = "auto"
	SchemePrezipped = "prezipped"
	SchemeSelected  = "selected"
	SchemeCustom    = "custom"
)

// Columns names the header fields a leg is read from.
type Columns struct {
	ItinID string `toml:"itin_id" yaml:"itin_id"`
	MktID  string `toml:"mkt_id" yaml:"mkt_id"`
	SeqNum string `toml:"seq_num" yaml:"seq_num"`
	Origin string `toml:"origin" yaml:"origin"`
	Dest   string `toml:"dest" yaml:"dest"`
}

// PrezippedColumns is the naming used by the pre-zipped bulk download.
var PrezippedColumns = Columns{
	ItinID: "ItinID",
	MktID:  "MktID",
	SeqNum: "SeqNum",
	Origin: "OriginAirportID",
	Dest:   "DestAirportID",
}

// SelectedColumns is the naming used when fields are picked individually.
var SelectedColumns = Columns{
	ItinID: "ITIN_ID",
	MktID:  "MKT_ID",
	SeqNum: "SEQ_NUM",
	Origin: "ORIGIN_AIRPORT_ID",
	Dest:   "DEST_AIRPORT_ID",
}

// Names returns the field names in a fixed order.
func (c Columns) Names() []string {
	return []string{c.ItinID, c.MktID, c.SeqNum, c.Origin, c.Dest}
}

// Complete reports whether every field name is set.
func (c Columns) Complete() bool {
	for _, n := range c.Names() {
		if n == "" {
			return false
		}
	}
	return true
}

// ResolveColumns picks the column naming for scheme. The auto scheme
// chooses the selected naming for inputs whose base name ends in "_min"
// and the pre-zipped naming otherwise. custom is only valid with a
// complete custom naming.
func ResolveColumns(scheme, filename string, custom Columns) (Columns, error) {
	switch scheme {
	case SchemePrezipped:
		return PrezippedColumns, nil
	case SchemeSelected:
		return SelectedColumns, nil
	case SchemeCustom:
		if !custom.Complete() {
			return Columns{}, errors.Config("custom column scheme requires all of itin_id, mkt_id, seq_num, origin, dest")
		}
		return custom, nil
	case SchemeAuto, "":
		if strings.HasSuffix(stem(filename), "_min") {
			return SelectedColumns, nil
		}
		return PrezippedColumns, nil
	default:
		return Columns{}, errors.Config("unknown column scheme: %q (must be one of: auto, prezipped, selected, custom)", scheme)
	}
}

// stem strips directories, a trailing .sz and the last extension.
func stem(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), ".sz")
	return strings.TrimSuffix(base, filepath.Ext(base))
}
