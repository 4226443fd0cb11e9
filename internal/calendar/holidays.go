package calendar

import "time"

// National holidays observed by every office, by year, month, and day.
// Emiliani-shifted holidays are listed on their observed Monday.
var baseTable = map[int]map[int][]int{
	2021: {
		1:  {1, 11},
		3:  {22},
		4:  {1, 2},
		5:  {1, 17},
		6:  {7, 14},
		7:  {5, 20},
		8:  {7, 16},
		10: {18},
		11: {1, 15},
		12: {8},
	},
	2022: {
		1:  {1, 10},
		3:  {21},
		4:  {14, 15},
		5:  {1, 30},
		6:  {20, 27},
		7:  {4, 20},
		8:  {7, 15},
		10: {17},
		11: {7, 14},
		12: {8},
	},
	2023: {
		1:  {1, 9},
		3:  {20},
		4:  {6, 7},
		5:  {1, 22},
		6:  {12, 19},
		7:  {3, 20},
		8:  {7, 21},
		10: {16},
		11: {6, 13},
		12: {8, 25},
	},
	2024: {
		1:  {1, 8},
		3:  {25, 28, 29},
		5:  {1, 13},
		6:  {3, 10},
		7:  {1},
		8:  {7, 19},
		10: {14},
		11: {4, 11},
		12: {25},
	},
	2025: {
		1:  {1, 6},
		3:  {24},
		4:  {17, 18},
		5:  {1},
		6:  {2, 23, 30},
		8:  {7, 18},
		10: {13},
		11: {3, 17},
		12: {8, 25},
	},
}

// Judiciary-wide closures decreed by the council, beyond national holidays.
var justiceTable = map[int]map[int][]int{}

// Monday through Wednesday of holy week, observed by offices that rest
// through the full week.
var holyWeekTable = map[int]map[int][]int{
	2021: {3: {29, 30, 31}},
	2022: {4: {11, 12, 13}},
	2023: {4: {3, 4, 5}},
	2024: {3: {25, 26, 27}},
	2025: {4: {14, 15, 16}},
}

// Year-end judicial recess days, spanning late December and early January.
var recessTable = map[int]map[int][]int{
	2021: {
		1:  {2, 3, 4, 5, 6, 7, 8, 9, 10},
		12: {17, 20, 21, 22, 23, 24, 27, 28, 29, 30, 31},
	},
	2022: {
		1:  {2, 3, 4, 5, 6, 7, 8, 9},
		12: {20, 21, 22, 23, 26, 27, 28, 29, 30},
	},
	2023: {
		1:  {2, 3, 4, 5, 6, 10},
		12: {20, 21, 22, 26, 27, 28, 29},
	},
	2024: {
		1:  {2, 3, 4, 5, 9, 10},
		12: {17, 20, 21, 22, 23, 24, 26, 27, 28, 29, 30, 31},
	},
	2025: {
		1:  {2, 3, 7, 8, 9, 10},
		12: {17, 22, 23, 24, 26, 29, 30, 31},
	},
}

var (
	baseHolidays    = fromTable(baseTable)
	justiceClosures = fromTable(justiceTable)
	holyWeek        = fromTable(holyWeekTable)
	judicialRecess  = fromTable(recessTable)
)

func fromTable(table map[int]map[int][]int) NonWorkingSet {
	out := make(NonWorkingSet)
	for year, months := range table {
		for month, days := range months {
			key := monthKey(year, time.Month(month))
			set := make(map[int]bool, len(days))
			for _, day := range days {
				set[day] = true
			}
			out[key] = set
		}
	}
	return out
}
