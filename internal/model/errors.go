package model

import "errors"

var ErrNoRecord = errors.New("no record")
var ErrAlreadyExists = errors.New("entity already exists")
var ErrRuleInactive = errors.New("rule is not active")
var ErrDateExcluded = errors.New("date is excluded from the rule")
