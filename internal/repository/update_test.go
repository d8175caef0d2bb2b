package repository

import (
	"context"
	"testing"

	"github.com/tikevents/tikevents/internal/model"
)

func TestUpdateSetStatement(t *testing.T) {
	u := newUpdate("venues")
	set(u, column{name: "name", field: "name", tag: "required"}, model.Set("Arena'; DROP TABLE venues; --"))
	set(u, column{name: "address", field: "address", nullable: true}, model.Null[string]())
	set(u, column{name: "capacity", field: "capacity", tag: "gt=0"}, model.Field[int]{})

	if got, want := u.statement(), "UPDATE venues SET name = ?, address = ? WHERE id = ?"; got != want {
		t.Fatalf("statement = %q, want %q", got, want)
	}
	if len(u.args) != 2 || u.args[0] != "Arena'; DROP TABLE venues; --" || u.args[1] != nil {
		t.Fatalf("args = %#v", u.args)
	}
}

func TestUpdateSetRejects(t *testing.T) {
	tests := []struct {
		name  string
		apply func(u *updateSet)
		field string
	}{
		{"clear required column", func(u *updateSet) {
			set(u, column{name: "name", field: "name"}, model.Null[string]())
		}, "name"},
		{"value fails tag", func(u *updateSet) {
			set(u, column{name: "quantity", field: "quantity", tag: "gt=0"}, model.Set(0))
		}, "quantity"},
		{"first error wins", func(u *updateSet) {
			set(u, column{name: "price", field: "price", tag: "gte=0"}, model.Set(-1.0))
			set(u, column{name: "name", field: "name"}, model.Null[string]())
		}, "price"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := newUpdate("t")
			tc.apply(u)
			ve, ok := u.err.(*model.ValidationError)
			if !ok {
				t.Fatalf("err = %v", u.err)
			}
			if ve.Field != tc.field {
				t.Errorf("field = %q, want %q", ve.Field, tc.field)
			}
		})
	}
}

func TestUpdateSetEmptySkipsStore(t *testing.T) {
	u := newUpdate("venues")
	set(u, column{name: "name", field: "name"}, model.Field[string]{})
	// a nil provider would panic if the statement were sent
	n, err := u.exec(context.Background(), nil, 1)
	if n != 0 || err != nil {
		t.Fatalf("exec = %d, %v", n, err)
	}
}
