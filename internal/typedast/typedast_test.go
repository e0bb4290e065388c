package typedast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/hindley/internal/types"
)

func TestGenBindOnlyCarriesScheme(t *testing.T) {
	g := &GenBind{
		Name:   "id",
		Scheme: &types.Scheme{Vars: []string{"a"}, Type: types.Fun{Domain: types.Var{Name: "a"}, Range: types.Var{Name: "a"}}},
		Value:  &Var{Name: "id"},
	}
	require.Equal(t, "id :: forall a. (a -> a) = id : %!s(<nil>)", g.String())
	require.True(t, g.GetType().Equals(g.Scheme.Type))
}

func TestDictAbsAndAppString(t *testing.T) {
	abs := &DictAbs{Params: []string{"Num_a"}, Body: &Var{Name: "x"}}
	require.Contains(t, abs.String(), "$Num_a")
	app := &DictApp{Func: &Var{Name: "f"}, Args: []Node{&DictInstance{Class: "Num", TypeHead: "Int"}}}
	require.Contains(t, app.String(), "$dict(Num,Int)")
}

func TestProgramStringConcatenatesBinds(t *testing.T) {
	p := &Program{Binds: []*GenBind{
		{Name: "a", Scheme: &types.Scheme{Type: types.TInt}, Value: &Lit{Value: "1"}},
		{Name: "b", Scheme: &types.Scheme{Type: types.TBool}, Value: &Lit{Value: "True"}},
	}}
	out := p.String()
	require.Contains(t, out, "a ::")
	require.Contains(t, out, "b ::")
}
