package tableview

import "testing"

func TestNewPaginator(t *testing.T) {
	tests := []struct {
		name     string
		pageSize int
		wantErr  bool
	}{
		{"valid size", 5, false},
		{"size one", 1, false},
		{"zero size", 0, true},
		{"negative size", -3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPaginator(tt.pageSize)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewPaginator(%d) error = %v, wantErr %v", tt.pageSize, err, tt.wantErr)
			}
		})
	}
}

func TestPaginatorWindows(t *testing.T) {
	p, err := NewPaginator(5)
	if err != nil {
		t.Fatalf("NewPaginator() error = %v", err)
	}
	p.SetTotal(12)

	if got := p.TotalPages(); got != 3 {
		t.Fatalf("TotalPages() = %d, want 3", got)
	}

	wantSizes := []int{5, 5, 2}
	for page := 1; page <= 3; page++ {
		p.SetPage(page)
		start, end := p.Window()
		if end-start != wantSizes[page-1] {
			t.Errorf("page %d window size = %d, want %d", page, end-start, wantSizes[page-1])
		}
	}
}

func TestPaginatorSetPageIgnoresOutOfRange(t *testing.T) {
	p, _ := NewPaginator(5)
	p.SetTotal(12)
	p.SetPage(2)

	tests := []struct {
		name string
		page int
	}{
		{"page zero", 0},
		{"negative page", -1},
		{"past last page", 4},
		{"far past last page", 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.SetPage(tt.page)
			if p.Page() != 2 {
				t.Errorf("Page() = %d after SetPage(%d), want 2", p.Page(), tt.page)
			}
		})
	}
}

func TestPaginatorClampsOnShrink(t *testing.T) {
	p, _ := NewPaginator(5)
	p.SetTotal(12)
	p.SetPage(3)

	p.SetTotal(6)
	if p.Page() != 2 {
		t.Errorf("Page() = %d after shrink to 6 items, want 2", p.Page())
	}

	p.SetTotal(0)
	if p.Page() != 1 {
		t.Errorf("Page() = %d after shrink to 0 items, want 1", p.Page())
	}
	if p.TotalPages() != 1 {
		t.Errorf("TotalPages() = %d for empty collection, want 1", p.TotalPages())
	}
}

func TestPageOf(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i + 1
	}

	tests := []struct {
		name      string
		page      int
		wantLen   int
		wantFirst int
	}{
		{"first page", 1, 5, 1},
		{"second page", 2, 5, 6},
		{"last partial page", 3, 2, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := NewPaginator(5)
			p.SetTotal(len(items))
			p.SetPage(tt.page)
			got := PageOf(p, items)
			if len(got) != tt.wantLen {
				t.Fatalf("PageOf() len = %d, want %d", len(got), tt.wantLen)
			}
			if got[0] != tt.wantFirst {
				t.Errorf("PageOf()[0] = %d, want %d", got[0], tt.wantFirst)
			}
		})
	}
}
