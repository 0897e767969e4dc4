package config

import (
	"os"
	"testing"
)

func TestEval(t *testing.T) {
	se := NewStringExpression()

	se.Add("var1", "ok").Add("var2", "2")

	r, _ := se.Eval("%(var1)s_test_%(var2)02d")

	if r != "ok_test_02" {
		t.Error("fail to replace the environment")
	}
}

func TestEvalProcessEnvironment(t *testing.T) {
	os.Setenv("ZM_EXPR_TEST", "hello")
	defer os.Unsetenv("ZM_EXPR_TEST")

	r, _ := NewStringExpression().Eval("%(ENV_ZM_EXPR_TEST)s")
	if r != "hello" {
		t.Error("fail to replace from the process environment")
	}
}

func TestEvalMissingVariable(t *testing.T) {
	_, err := NewStringExpression().Eval("%(no_such_var)s")
	if err == nil {
		t.Error("expected an error for an unknown variable")
	}
}
