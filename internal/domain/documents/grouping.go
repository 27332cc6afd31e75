package documents

import "sort"

// SortNewestFirst orders rows by year, then quarter, both descending.
func SortNewestFirst(rows []DocumentRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year > rows[j].Year
		}
		return quarterRank[rows[i].Quarter] > quarterRank[rows[j].Quarter]
	})
}

func GroupByForm(rows []DocumentRow) map[string][]DocumentRow {
	grouped := make(map[string][]DocumentRow)
	for _, row := range rows {
		grouped[row.FormName] = append(grouped[row.FormName], row)
	}
	for _, list := range grouped {
		SortNewestFirst(list)
	}
	return grouped
}

// GroupByClient keys by client name; clients sharing a name are merged.
func GroupByClient(rows []DocumentRow) map[string]map[string][]DocumentRow {
	byClient := make(map[string][]DocumentRow)
	for _, row := range rows {
		byClient[row.ClientName] = append(byClient[row.ClientName], row)
	}
	grouped := make(map[string]map[string][]DocumentRow, len(byClient))
	for client, list := range byClient {
		grouped[client] = GroupByForm(list)
	}
	return grouped
}
