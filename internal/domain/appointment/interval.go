package appointment

import (
	"slices"
	"time"
)

// Overlaps: sobreposição semiaberta estrita. Intervalos que apenas se
// encostam (a.End == b.Start) não conflitam.
func Overlaps(a, b TimeSlot) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains informa se inner está inteiramente dentro de outer.
func Contains(outer, inner TimeSlot) bool {
	return !inner.Start.Before(outer.Start) && !inner.End.After(outer.End)
}

func Expand(s TimeSlot, d time.Duration) TimeSlot {
	return TimeSlot{Start: s.Start.Add(-d), End: s.End.Add(d)}
}

// Clip recorta s à janela. ok é false quando nada sobra.
func Clip(s, window TimeSlot) (TimeSlot, bool) {
	start := s.Start
	if start.Before(window.Start) {
		start = window.Start
	}
	end := s.End
	if end.After(window.End) {
		end = window.End
	}
	out := TimeSlot{Start: start, End: end}
	return out, out.Valid()
}

// MergeIntervals ordena por início e une intervalos sobrepostos ou
// adjacentes (next.Start <= cur.End). A entrada não é alterada.
func MergeIntervals(slots []TimeSlot) []TimeSlot {
	if len(slots) == 0 {
		return nil
	}

	sorted := slices.Clone(slots)
	slices.SortFunc(sorted, func(a, b TimeSlot) int {
		return a.Start.Compare(b.Start)
	})

	merged := make([]TimeSlot, 0, len(sorted))
	cur := sorted[0]
	for _, next := range sorted[1:] {
		if !next.Start.After(cur.End) {
			if next.End.After(cur.End) {
				cur.End = next.End
			}
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	return append(merged, cur)
}

// Complement devolve as lacunas da janela não cobertas por occupied.
// Intervalos fora da janela são ignorados e os parciais recortados.
func Complement(occupied []TimeSlot, window TimeSlot) []TimeSlot {
	if !window.Valid() {
		return nil
	}

	free := make([]TimeSlot, 0, len(occupied)+1)
	cursor := window.Start

	for _, o := range MergeIntervals(occupied) {
		clipped, ok := Clip(o, window)
		if !ok {
			continue
		}
		if clipped.Start.After(cursor) {
			free = append(free, TimeSlot{Start: cursor, End: clipped.Start})
		}
		if clipped.End.After(cursor) {
			cursor = clipped.End
		}
	}

	if cursor.Before(window.End) {
		free = append(free, TimeSlot{Start: cursor, End: window.End})
	}
	return free
}
