// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package render

import (
	"grimm.is/cfgdoc/internal/configdoc"
	"grimm.is/cfgdoc/internal/errors"
)

type jsonRenderer struct{}

func (jsonRenderer) Format() string { return "json" }

// Render writes the raw items of every output file as <id>.json.
func (jsonRenderer) Render(out *configdoc.Output) (Files, error) {
	files := make(Files, len(out.Files))
	for _, id := range out.FileIDs() {
		data, err := configdoc.EncodeItems(out.Files[id])
		if err != nil {
			return nil, errors.Attr(err, "file", id)
		}
		files[id+".json"] = append(data, '\n')
	}
	return files, nil
}
