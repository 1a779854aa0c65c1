package repo

type filter struct {
	id     *string
	fields map[string]any
	fn     func(any) bool
}

type Filter func(*filter)

func ByID(id string) Filter {
	return func(f *filter) {
		f.id = &id
	}
}

// ByField matches a document field by its bson name.
func ByField(name string, value any) Filter {
	return func(f *filter) {
		f.fields[name] = value
	}
}

func Where[T any](filterFunc func(T) bool) Filter {
	check := func(x any) bool {
		t, ok := x.(T)
		return ok && filterFunc(t)
	}
	return func(f *filter) {
		f.fn = check
	}
}

func buildFilter(filters []Filter) filter {
	f := filter{fields: make(map[string]any)}
	for _, apply := range filters {
		apply(&f)
	}
	return f
}
