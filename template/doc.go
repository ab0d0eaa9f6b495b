// Package template implements the text template engine used to render
// generated source files. The syntax is deliberately small: variable
// substitution ({{name}}, {{path.to.name}}), boolean conditionals
// ({{#if flag}} ... {{else}} ... {{/if}}) and sequence iteration
// ({{#each seq}} ... {{/each}}) with the loop variables @index, @first
// and @last.
//
// Rendering is strict: a referenced variable missing from the context
// fails with schemaforge.UnresolvedVariableError instead of producing a
// blank, so broken generated code is caught at generation time.
package template
