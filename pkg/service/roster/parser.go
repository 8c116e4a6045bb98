package roster

import (
	"context"
	"sort"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/domain/types"
)

// ParseRoster turns raw delimited roster text into groups. It is total:
// malformed rows are skipped, never reported as errors. The first line is
// always treated as a header. A row contributes a member only when it has
// at least four fields: group number, name, phone, email. Rows whose
// group-number field does not parse as an integer are dropped with a
// warning.
//
// Field splitting honors double-quote spans so embedded commas survive; a
// quote toggles the in-quotes state and escaped quotes are not supported.
// Groups come out sorted ascending by group number, members in source
// order, every group starting as waiting.
func ParseRoster(ctx context.Context, text string) []model.Group {
	logger := ctxlog.From(ctx)

	lines := strings.Split(strings.TrimSpace(text), "\n")
	memberMap := make(map[types.GroupNumber][]model.GroupMember)

	// Skip header row (index 0)
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		fields := splitLine(line)
		if len(fields) < 4 {
			continue
		}

		groupNumber, err := types.ParseGroupNumber(fields[0])
		if err != nil {
			logger.Warn("Skipping roster row with non-numeric group number",
				"line", i+1,
				"field", fields[0],
			)
			continue
		}

		memberMap[groupNumber] = append(memberMap[groupNumber], model.GroupMember{
			Name:  fields[1],
			Phone: NormalizePhone(fields[2]),
			Email: fields[3],
		})
	}

	groups := make([]model.Group, 0, len(memberMap))
	for groupNumber, members := range memberMap {
		groups = append(groups, model.Group{
			GroupNumber: groupNumber,
			Members:     members,
			Status:      types.QueueStatusWaiting,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].GroupNumber < groups[j].GroupNumber
	})

	return groups
}

// splitLine splits one roster row on commas, keeping quoted spans intact.
// Surrounding whitespace is trimmed from every field.
func splitLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}
