package universe

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite"

	"github.com/funvibe/typerel/internal/config"
)

const catalogSchema = `
CREATE TABLE IF NOT EXISTS classes (
	name     TEXT PRIMARY KEY,
	kind     TEXT NOT NULL,
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS params (
	class    TEXT NOT NULL REFERENCES classes(name) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	name     TEXT NOT NULL,
	PRIMARY KEY (class, position)
);
CREATE TABLE IF NOT EXISTS bounds (
	class    TEXT NOT NULL REFERENCES classes(name) ON DELETE CASCADE,
	param    INTEGER NOT NULL,
	position INTEGER NOT NULL,
	type     TEXT NOT NULL,
	PRIMARY KEY (class, param, position)
);
CREATE TABLE IF NOT EXISTS supertypes (
	class    TEXT NOT NULL REFERENCES classes(name) ON DELETE CASCADE,
	relation TEXT NOT NULL CHECK (relation IN ('extends', 'implements')),
	position INTEGER NOT NULL,
	type     TEXT NOT NULL,
	PRIMARY KEY (class, relation, position)
);
`

// OpenCatalog opens (creating if needed) the SQLite class catalog at path.
// The caller closes the returned database.
func OpenCatalog(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(config.CatalogDriverName, path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening catalog %s", path)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "opening catalog %s", path)
	}
	return db, nil
}

// WriteCatalog creates the catalog schema if missing and stores specs after
// the classes already in it.
func WriteCatalog(ctx context.Context, db *sql.DB, specs []ClassSpec) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "writing catalog")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, catalogSchema); err != nil {
		return errors.Wrap(err, "creating catalog schema")
	}
	var next int
	if err = tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(position) + 1, 0) FROM classes").Scan(&next); err != nil {
		return errors.Wrap(err, "writing catalog")
	}

	for i, spec := range specs {
		kind := spec.Kind
		if kind == "" {
			kind = config.ClassKindName
		}
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO classes (name, kind, position) VALUES (?, ?, ?)",
			spec.Name, kind, next+i); err != nil {
			return errors.Wrapf(err, "storing class %s", spec.Name)
		}
		for j, p := range spec.Params {
			if _, err = tx.ExecContext(ctx,
				"INSERT INTO params (class, position, name) VALUES (?, ?, ?)",
				spec.Name, j, p.Name); err != nil {
				return errors.Wrapf(err, "storing class %s", spec.Name)
			}
			for k, b := range p.Bounds {
				if _, err = tx.ExecContext(ctx,
					"INSERT INTO bounds (class, param, position, type) VALUES (?, ?, ?, ?)",
					spec.Name, j, k, b); err != nil {
					return errors.Wrapf(err, "storing class %s", spec.Name)
				}
			}
		}
		if err = insertSupertypes(ctx, tx, spec.Name, config.ExtendsKeyword, spec.Extends); err != nil {
			return err
		}
		if err = insertSupertypes(ctx, tx, spec.Name, "implements", spec.Implements); err != nil {
			return err
		}
	}
	return errors.Wrap(tx.Commit(), "writing catalog")
}

func insertSupertypes(ctx context.Context, tx *sql.Tx, class, relation string, types []string) error {
	for i, t := range types {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO supertypes (class, relation, position, type) VALUES (?, ?, ?, ?)",
			class, relation, i, t); err != nil {
			return errors.Wrapf(err, "storing class %s", class)
		}
	}
	return nil
}

// ReadCatalog returns the class specs stored in db in insertion order.
func ReadCatalog(ctx context.Context, db *sql.DB) ([]ClassSpec, error) {
	var specs []ClassSpec
	index := make(map[string]int)
	err := eachRow(ctx, db, "SELECT name, kind FROM classes ORDER BY position",
		func(rows *sql.Rows) error {
			var spec ClassSpec
			if err := rows.Scan(&spec.Name, &spec.Kind); err != nil {
				return err
			}
			if spec.Kind == config.ClassKindName {
				spec.Kind = ""
			}
			index[spec.Name] = len(specs)
			specs = append(specs, spec)
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = eachRow(ctx, db, "SELECT class, name FROM params ORDER BY class, position",
		func(rows *sql.Rows) error {
			var class, name string
			if err := rows.Scan(&class, &name); err != nil {
				return err
			}
			i, ok := index[class]
			if !ok {
				return errors.Newf("parameter %s of unknown class %s", name, class)
			}
			specs[i].Params = append(specs[i].Params, ParamSpec{Name: name})
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = eachRow(ctx, db, "SELECT class, param, type FROM bounds ORDER BY class, param, position",
		func(rows *sql.Rows) error {
			var class, typ string
			var param int
			if err := rows.Scan(&class, &param, &typ); err != nil {
				return err
			}
			i, ok := index[class]
			if !ok || param < 0 || param >= len(specs[i].Params) {
				return errors.Newf("bound %s of unknown parameter %d of %s", typ, param, class)
			}
			specs[i].Params[param].Bounds = append(specs[i].Params[param].Bounds, typ)
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = eachRow(ctx, db, "SELECT class, relation, type FROM supertypes ORDER BY class, relation, position",
		func(rows *sql.Rows) error {
			var class, relation, typ string
			if err := rows.Scan(&class, &relation, &typ); err != nil {
				return err
			}
			i, ok := index[class]
			if !ok {
				return errors.Newf("supertype %s of unknown class %s", typ, class)
			}
			if relation == config.ExtendsKeyword {
				specs[i].Extends = append(specs[i].Extends, typ)
			} else {
				specs[i].Implements = append(specs[i].Implements, typ)
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	return specs, nil
}

func eachRow(ctx context.Context, db *sql.DB, query string, fn func(*sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return errors.Wrap(err, "reading catalog")
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return errors.Wrap(err, "reading catalog")
		}
	}
	return errors.Wrap(rows.Err(), "reading catalog")
}

// LoadCatalog defines the classes stored in db.
func (u *Universe) LoadCatalog(ctx context.Context, db *sql.DB) error {
	specs, err := ReadCatalog(ctx, db)
	if err != nil {
		return err
	}
	return u.Define(specs...)
}
