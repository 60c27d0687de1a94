package config

// DefaultSourceName names the bundled defaults in Config.Sources.
const DefaultSourceName = "defaults"

// DefaultRules is the configuration every run starts from unless defaults are
// disabled. Project files override it field by field.
func DefaultRules() map[string]interface{} {
	return map[string]interface{}{
		"no-duplicate-includes":             true,
		"create-column-nullable-constraint": true,
		"create-table-remarks":              true,
		"primary-key-name": map[string]interface{}{
			"enabled":      true,
			"pattern":      "^{{value}}_PK$",
			"dynamicValue": "tableName",
		},
		"schema-name": map[string]interface{}{
			"enabled": false,
			"pattern": `^\$\{[A-Za-z0-9_]+\}$`,
		},
	}
}

// DefaultSource returns the bundled defaults as a Source.
func DefaultSource() Source {
	return MapSource(DefaultSourceName, map[string]interface{}{
		rulesKey: DefaultRules(),
	})
}
