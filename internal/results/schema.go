package results

// Schema is the JSON Schema (Draft 2020-12) for the results document
// served by the exago API. It pins the field names used by the
// project runner; every block is optional.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/hotolab/exago/results.schema.json",
  "title": "Exago Results Document",
  "description": "Analysis results for one repository snapshot",
  "type": "object",
  "properties": {
    "name": {
      "type": "string",
      "description": "Repository import path"
    },
    "date": {
      "type": "string",
      "description": "Analysis completion time (RFC 3339)"
    },
    "executionTime": {
      "type": ["number", "string", "null"],
      "description": "Duration of the last analysis in seconds"
    },
    "score": { "$ref": "#/$defs/Score" },
    "projectrunner": { "$ref": "#/$defs/ProjectRunner" }
  },
  "$defs": {
    "Score": {
      "type": "object",
      "properties": {
        "value": { "type": "number" },
        "rank": { "type": "string" },
        "details": {
          "type": "array",
          "items": { "$ref": "#/$defs/ScoreDetail" }
        }
      }
    },
    "ScoreDetail": {
      "type": "object",
      "required": ["name", "score"],
      "properties": {
        "name": { "type": "string" },
        "desc": { "type": "string" },
        "msg": { "type": "string" },
        "score": { "type": "number" }
      }
    },
    "ProjectRunner": {
      "type": "object",
      "properties": {
        "download": {
          "type": "object",
          "properties": {
            "error": { "type": "string" }
          }
        },
        "test": {
          "type": "object",
          "properties": {
            "data": {
              "oneOf": [
                { "type": "array", "items": { "$ref": "#/$defs/TestPackage" } },
                { "type": "null" }
              ]
            }
          }
        },
        "coverage": {
          "type": "object",
          "properties": {
            "data": {
              "oneOf": [
                {
                  "type": "object",
                  "properties": {
                    "packages": {
                      "oneOf": [
                        { "type": "array", "items": { "$ref": "#/$defs/CoveragePackage" } },
                        { "type": "null" }
                      ]
                    }
                  }
                },
                { "type": "null" }
              ]
            }
          }
        },
        "thirdparties": {
          "type": "object",
          "properties": {
            "data": {
              "oneOf": [
                { "type": "array" },
                { "type": "null" }
              ]
            }
          }
        },
        "goprove": {
          "type": "object",
          "properties": {
            "data": {
              "oneOf": [
                { "$ref": "#/$defs/Checklist" },
                { "type": "null" }
              ]
            }
          }
        }
      }
    },
    "TestPackage": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": { "type": "string" },
        "execution_time": { "type": "number" },
        "tests": {
          "oneOf": [
            { "type": "array", "items": { "$ref": "#/$defs/Test" } },
            { "type": "null" }
          ]
        }
      }
    },
    "Test": {
      "type": "object",
      "required": ["name", "passed"],
      "properties": {
        "name": { "type": "string" },
        "execution_time": { "type": "number" },
        "passed": { "type": "boolean" }
      }
    },
    "CoveragePackage": {
      "type": "object",
      "required": ["name", "coverage"],
      "properties": {
        "name": { "type": "string" },
        "coverage": {
          "type": "number",
          "minimum": 0,
          "maximum": 100
        }
      }
    },
    "Checklist": {
      "type": "object",
      "properties": {
        "passed": {
          "oneOf": [
            { "type": "array", "items": { "$ref": "#/$defs/ChecklistItem" } },
            { "type": "null" }
          ]
        },
        "failed": {
          "oneOf": [
            { "type": "array", "items": { "$ref": "#/$defs/ChecklistItem" } },
            { "type": "null" }
          ]
        }
      }
    },
    "ChecklistItem": {
      "type": "object",
      "required": ["category", "desc"],
      "properties": {
        "category": { "type": "string" },
        "desc": { "type": "string" }
      }
    }
  }
}`
