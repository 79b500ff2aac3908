package query

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"

	"github.com/tschuyebuhl/soundex/data"
	"github.com/tschuyebuhl/soundex/userctx"
)

func UserIDModifier(ctx context.Context) bob.Mod[*dialect.SelectQuery] {
	return sm.Where(psql.Quote("user_id").EQ(psql.Arg(userctx.MustUserID(ctx))))
}

// SoundsLike matches rows whose stored code column equals the code of name.
func SoundsLike(column, name string) bob.Mod[*dialect.SelectQuery] {
	return sm.Where(psql.Quote(column).EQ(psql.Arg(data.Code(name))))
}

// NameCodeModifier matches rows sounding like the caller, using the code put in
// ctx by the auth middleware. Without one it matches nothing.
func NameCodeModifier(ctx context.Context, column string) bob.Mod[*dialect.SelectQuery] {
	code, ok := userctx.NameCodeFromContext(ctx)
	if !ok || code == "" {
		return sm.Where(psql.Raw("FALSE"))
	}
	return sm.Where(psql.Quote(column).EQ(psql.Arg(code)))
}
