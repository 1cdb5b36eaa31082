/*
Package grammar implements the front end of the lumen lighting DSL.

A Tokenizer turns DSL source into positioned tokens. Newlines are
insignificant, except inside the command blocks of an interval
header:

    DIMMER{
        INTERVAL[1-4]{
            LIGHT.L DIMMER func wave from 0 to PI
            LIGHT.R DIMMER func wave from 0 to PI
        }
    }

Here each line between the inner braces is a command of its own, so the
tokenizer emits NEWLINE tokens there and nowhere else.

Three recursive-descent parsers build the syntax structures from tokens:
CueParser for cue definitions, SettingParser for fixture configurations,
and ShowParser for show sequences. The show parser re-enters the cue
parser for inline cues, sharing its token buffer.

Neither tokenizer nor parsers keep global state. Tracing is configured by
option (WithTrace) and is pure observation.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar
